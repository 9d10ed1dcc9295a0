package record

import (
	"context"
	"mime/multipart"
	"strings"

	"nodex/internal/app/server/api/http/apierr"
	"nodex/internal/app/server/api/http/middleware/auth"
	"nodex/internal/domain/record"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Handler публикует операции одного вида записей.
type Handler[F record.Fields, P record.Patch[F]] struct {
	service    record.Servicer[F, P]
	routes     Routes
	maxUpload  int64
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler[F record.Fields, P record.Patch[F]](
	service record.Servicer[F, P],
	routes Routes,
	maxUpload int64,
	log *slog.Logger,
	mws huma.Middlewares,
) *Handler[F, P] {
	return &Handler[F, P]{
		service:    service,
		routes:     routes,
		maxUpload:  maxUpload,
		log:        log.With("component", "record_handler", "kind", service.Kind().Name),
		middleware: mws,
	}
}

func (h *Handler[F, P]) SetupRoutes(api huma.API) {
	if h.routes.WrapList {
		huma.Register(api, h.listOp(), h.listWrapped)
	} else {
		huma.Register(api, h.listOp(), h.list)
	}
	if h.routes.Get != "" {
		huma.Register(api, h.findOp(), h.find)
	}
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	for _, path := range h.routes.Upsert {
		if strings.Contains(path, "{id}") {
			huma.Register(api, h.upsertOp(path), h.upsertByID)
		} else {
			huma.Register(api, h.upsertOp(path), h.upsert)
		}
	}
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler[F, P]) list(ctx context.Context, _ *struct{}) (*listOutput[F], error) {
	records, err := h.records(ctx)
	if err != nil {
		return nil, err
	}
	return &listOutput[F]{Body: records}, nil
}

func (h *Handler[F, P]) listWrapped(ctx context.Context, _ *struct{}) (*wrappedListOutput[F], error) {
	records, err := h.records(ctx)
	if err != nil {
		return nil, err
	}
	return &wrappedListOutput[F]{Body: wrappedList[F]{Record: records}}, nil
}

func (h *Handler[F, P]) records(ctx context.Context) ([]record.Record[F], error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	records, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}
	return records, nil
}

func (h *Handler[F, P]) find(ctx context.Context, input *idInput) (*recordOutput[F], error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	rec, err := h.service.Find(ctx, userID, input.ID)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}
	return &recordOutput[F]{Body: rec}, nil
}

func (h *Handler[F, P]) create(ctx context.Context, input *formInput) (*recordOutput[F], error) {
	return h.mutate(ctx, &input.RawBody, func(userID string, patch P, file *record.Upload) (record.Record[F], error) {
		return h.service.Create(ctx, userID, patch.Fields(), file)
	})
}

func (h *Handler[F, P]) update(ctx context.Context, input *idFormInput) (*recordOutput[F], error) {
	return h.mutate(ctx, &input.RawBody, func(userID string, patch P, file *record.Upload) (record.Record[F], error) {
		return h.service.Update(ctx, userID, input.ID, patch, file)
	})
}

func (h *Handler[F, P]) upsert(ctx context.Context, input *formInput) (*recordOutput[F], error) {
	return h.mutate(ctx, &input.RawBody, func(userID string, patch P, file *record.Upload) (record.Record[F], error) {
		return h.service.Upsert(ctx, userID, "", patch, file)
	})
}

func (h *Handler[F, P]) upsertByID(ctx context.Context, input *idFormInput) (*recordOutput[F], error) {
	return h.mutate(ctx, &input.RawBody, func(userID string, patch P, file *record.Upload) (record.Record[F], error) {
		return h.service.Upsert(ctx, userID, input.ID, patch, file)
	})
}

// mutate разбирает форму и вызывает операцию сервиса; любая ошибка превращается в ответ.
func (h *Handler[F, P]) mutate(
	ctx context.Context,
	form *multipart.Form,
	do func(userID string, patch P, file *record.Upload) (record.Record[F], error),
) (*recordOutput[F], error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	patch, err := decodePatch[P](form)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}
	upload, closeUpload, err := openUpload(form)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}
	defer closeUpload()

	rec, err := do(userID, patch, upload)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}
	return &recordOutput[F]{Body: rec}, nil
}

func (h *Handler[F, P]) delete(ctx context.Context, input *idInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, apierr.From(h.log, err)
	}
	return &deleteOutput{
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(deletedMessage),
	}, nil
}
