package record

import (
	"mime/multipart"

	"nodex/internal/domain/record"
)

// formInput - multipart/form-data: значения полей и не больше одного файла в части file.
type formInput struct {
	RawBody multipart.Form
}

type idFormInput struct {
	ID      string `path:"id" doc:"Идентификатор записи"`
	RawBody multipart.Form
}

type idInput struct {
	ID string `path:"id" doc:"Идентификатор записи"`
}

type listOutput[F any] struct {
	Body []record.Record[F]
}

type wrappedListOutput[F any] struct {
	Body wrappedList[F]
}

type wrappedList[F any] struct {
	Record []record.Record[F] `json:"record"`
}

type recordOutput[F any] struct {
	Body record.Record[F]
}

type deleteOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

const deletedMessage = "Record has been deleted successfully"
