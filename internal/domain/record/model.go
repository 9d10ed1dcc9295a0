package record

import (
	"io"
	"time"
)

// Record - документ вида F, принадлежащий пользователю OwnerID.
type Record[F any] struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"user"`
	Author    string    `json:"author"`
	Data      F         `json:"data"`
	FilePath  *string   `json:"filepath,omitempty"`
	ImagePath *string   `json:"imagePath,omitempty" doc:"Публичный URL вложения, вычисляется при каждом чтении"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Document - форма записи в хранилище. Data содержит поля вида в JSON.
type Document struct {
	ID        string
	Kind      string
	OwnerID   string
	Author    string
	Data      []byte
	FilePath  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Upload - единственный файл, пришедший вместе с запросом.
type Upload struct {
	Name    string
	Content io.Reader
}

// Fields - поля конкретного вида записи. Validate проверяет их целиком, как при создании.
type Fields interface {
	Validate() error
}

// Patch - частичное обновление полей F. Отсутствующее и пустое значение не различаются.
type Patch[F any] interface {
	// Validate проверяет только переданные поля.
	Validate() error
	Apply(current F) F
	// Fields превращает патч в полный набор полей для ветки создания в Upsert.
	Fields() F
}

func supplied(p *string) bool {
	return p != nil && *p != ""
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
