package postgres

// UserModel é o model GORM para usuários registrados.
// FaceID (correlation id) é nullable com índice único: a unicidade só
// vale quando presente (registros legados ficam de fora), equivalente a
// um índice único esparso.
type UserModel struct {
	ID                string   `gorm:"type:uuid;primary_key"`
	Name              string   `gorm:"type:varchar(500);not null;index"`
	FaceID            *string  `gorm:"type:uuid;uniqueIndex"`
	S3ImageKey        string   `gorm:"type:varchar(1024);not null"`
	S3ImageURL        string   `gorm:"type:varchar(2048);not null"`
	RekognitionFaceID string   `gorm:"type:varchar(255);index"`
	BoundingBox       []byte   `gorm:"type:jsonb"`
	Confidence        *float64 `gorm:"type:numeric"`
	CreatedAt         int64    `gorm:"autoCreateTime;index:idx_users_created_at,sort:desc"`
	UpdatedAt         int64    `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}
