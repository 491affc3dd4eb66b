package mapper

import (
	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/model"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.File) *entity.File {
	if f == nil {
		return nil
	}
	return &entity.File{
		Id:           f.Id,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		SessionId:    f.SessionId,
		UserId:       f.UserId,
		Title:        f.Title,
		CreatedAt:    f.CreatedAt,
	}
}

func (m *FileMapper) ToModel(f *entity.File) *model.File {
	if f == nil {
		return nil
	}
	return &model.File{
		Id:           f.Id,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		SessionId:    f.SessionId,
		UserId:       f.UserId,
		Title:        f.Title,
		CreatedAt:    f.CreatedAt,
	}
}

func (m *FileMapper) ToEntities(files []*model.File) []*entity.File {
	result := make([]*entity.File, 0, len(files))
	for _, f := range files {
		result = append(result, m.ToEntity(f))
	}
	return result
}
