package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"creative-critique-be/internal/constant"
	"creative-critique-be/internal/dto"
	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/pkg/logger"
	"creative-critique-be/internal/repository/memory"
	"creative-critique-be/internal/repository/specification"
	"creative-critique-be/internal/repository/unitofwork"
	"creative-critique-be/pkg/blobstore"

	"github.com/google/uuid"
)

type IFileService interface {
	Upload(ctx context.Context, userId *uuid.UUID, sessionId string, headers []*multipart.FileHeader) (*dto.UploadFileResponse, error)
	GetContent(ctx context.Context, id uuid.UUID) (*dto.FileContent, error)
	Delete(ctx context.Context, userId *uuid.UUID, id uuid.UUID) error
}

type fileService struct {
	uowFactory  unitofwork.RepositoryFactory
	store       blobstore.Store
	sessionRepo *memory.SessionRepository
	log         logger.ILogger
}

func NewFileService(
	uowFactory unitofwork.RepositoryFactory,
	store blobstore.Store,
	sessionRepo *memory.SessionRepository,
	log logger.ILogger,
) IFileService {
	return &fileService{
		uowFactory:  uowFactory,
		store:       store,
		sessionRepo: sessionRepo,
		log:         log,
	}
}

// Upload stores each part under a fresh storage key. The mime allow-list is
// checked before any byte reaches storage, and the metadata row is only
// written once the bytes are durable, so a row never points at nothing.
func (s *fileService) Upload(ctx context.Context, userId *uuid.UUID, sessionId string, headers []*multipart.FileHeader) (*dto.UploadFileResponse, error) {
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	// Validate the whole batch up front so a disallowed file rejects the
	// request before anything is stored.
	for _, header := range headers {
		mimeType := header.Header.Get("Content-Type")
		if !constant.UploadAllowedMimeTypes[mimeType] {
			return nil, &dto.UnsupportedFileTypeError{MimeType: mimeType, Name: header.Filename}
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	res := &dto.UploadFileResponse{Files: make([]*dto.FileDTO, 0, len(headers))}

	for _, header := range headers {
		data, err := readHeader(header)
		if err != nil {
			return nil, err
		}

		storageKey := uuid.NewString() + filepath.Ext(header.Filename)
		if err := s.store.Put(ctx, storageKey, data); err != nil {
			return nil, fmt.Errorf("store upload: %w", err)
		}

		file := &entity.File{
			Id:           uuid.New(),
			Filename:     storageKey,
			OriginalName: header.Filename,
			MimeType:     header.Header.Get("Content-Type"),
			Size:         int64(len(data)),
			SessionId:    sessionId,
			UserId:       userId,
			CreatedAt:    time.Now(),
		}
		if err := uow.FileRepository().Create(ctx, file); err != nil {
			// Roll the orphaned blob back so storage and metadata agree.
			if derr := s.store.Delete(ctx, storageKey); derr != nil {
				s.log.Warn("file", "orphan blob cleanup failed", map[string]interface{}{
					"filename": storageKey,
					"error":    derr.Error(),
				})
			}
			return nil, err
		}

		userKey := ""
		if userId != nil {
			userKey = userId.String()
		}
		sess := s.sessionRepo.Touch(sessionId, userKey)
		res.SessionFileCount = sess.FileCount

		res.Files = append(res.Files, toFileDTO(file))
	}
	return res, nil
}

func (s *fileService) GetContent(ctx context.Context, id uuid.UUID) (*dto.FileContent, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	file, err := uow.FileRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, &dto.NotFoundError{Resource: "file"}
	}

	data, err := s.store.Get(ctx, file.Filename)
	if err != nil {
		if err == blobstore.ErrNotFound {
			return nil, &dto.NotFoundError{Resource: "file"}
		}
		return nil, err
	}

	return &dto.FileContent{
		Data:         data,
		MimeType:     file.MimeType,
		OriginalName: file.OriginalName,
	}, nil
}

func (s *fileService) Delete(ctx context.Context, userId *uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	file, err := uow.FileRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if file == nil {
		return &dto.NotFoundError{Resource: "file"}
	}
	if file.UserId != nil {
		if userId == nil || *userId != *file.UserId {
			return &dto.ForbiddenError{Resource: "file"}
		}
	}

	if err := uow.FileRepository().Delete(ctx, file.Id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, file.Filename); err != nil {
		s.log.Warn("file", "blob delete failed", map[string]interface{}{
			"filename": file.Filename,
			"error":    err.Error(),
		})
	}
	return nil
}

func readHeader(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
