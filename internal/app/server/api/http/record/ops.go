package record

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

var security = []map[string][]string{{"auth": {}}, {"bearer": {}}}

func (h *Handler[F, P]) op(id, method, path, summary string) huma.Operation {
	kind := h.service.Kind()
	return huma.Operation{
		OperationID: fmt.Sprintf("%s-%s", kind.Name, id),
		Method:      method,
		Path:        kind.RoutePrefix + path,
		Summary:     summary,
		Tags:        []string{kind.Name},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler[F, P]) listOp() huma.Operation {
	return h.op("list", http.MethodGet, h.routes.List, "Список записей пользователя")
}

func (h *Handler[F, P]) findOp() huma.Operation {
	return h.op("find", http.MethodGet, h.routes.Get, "Получить запись")
}

func (h *Handler[F, P]) createOp() huma.Operation {
	op := h.op("create", http.MethodPost, h.routes.Create, "Создать запись")
	op.Description = "multipart/form-data: поля записи и необязательный файл в части file."
	op.MaxBodyBytes = h.maxUpload
	return op
}

func (h *Handler[F, P]) updateOp() huma.Operation {
	op := h.op("update", http.MethodPut, h.routes.Update, "Обновить запись")
	op.Description = "Меняются только переданные непустые поля. Новый файл заменяет прежнее вложение."
	op.MaxBodyBytes = h.maxUpload
	return op
}

func (h *Handler[F, P]) upsertOp(path string) huma.Operation {
	id := "upsert"
	if strings.Contains(path, "{id}") {
		id = "upsert-by-id"
	}
	op := h.op(id, http.MethodPost, path, "Обновить запись или создать новую")
	op.MaxBodyBytes = h.maxUpload
	return op
}

func (h *Handler[F, P]) deleteOp() huma.Operation {
	return h.op("delete", http.MethodDelete, h.routes.Delete, "Удалить запись")
}
