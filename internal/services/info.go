package services

import (
	"context"
	"path/filepath"
	"strings"

	"education-backend-go/internal/analytics"
	"education-backend-go/internal/config"
	"education-backend-go/internal/storage"
)

// TrainDataPage is a window of the training table.
type TrainDataPage struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

type Info struct {
	TrainData       TrainDataPage `json:"train_data"`
	SubjectArea     string        `json:"subject_area"`
	TargetAttribute string        `json:"target_attribute"`
}

// InfoService serves dataset metadata: subject area and target attribute
// descriptions stored as text objects, plus train-data previews.
type InfoService struct {
	blobs     *storage.BlobStore
	analytics *analytics.Service
	dataDir   string

	subjectAreaObject string
	targetAttrObject  string
}

func NewInfoService(blobs *storage.BlobStore, reports *analytics.Service, cfg config.Config) *InfoService {
	return &InfoService{
		blobs:             blobs,
		analytics:         reports,
		dataDir:           cfg.DataDir,
		subjectAreaObject: cfg.SubjectAreaObject,
		targetAttrObject:  cfg.TargetAttrObject,
	}
}

func (s *InfoService) TrainData(ctx context.Context, limit, offset int) (TrainDataPage, error) {
	dataset, err := s.analytics.LoadTrainData(ctx)
	if err != nil {
		return TrainDataPage{}, err
	}
	columns, rows := dataset.Page(limit, offset)
	return TrainDataPage{Columns: columns, Rows: rows}, nil
}

func (s *InfoService) SubjectArea(ctx context.Context) (string, error) {
	return s.readTextObject(ctx, s.subjectAreaObject)
}

func (s *InfoService) TargetAttribute(ctx context.Context) (string, error) {
	return s.readTextObject(ctx, s.targetAttrObject)
}

func (s *InfoService) Info(ctx context.Context, limit, offset int) (Info, error) {
	trainData, err := s.TrainData(ctx, limit, offset)
	if err != nil {
		return Info{}, err
	}
	subjectArea, err := s.SubjectArea(ctx)
	if err != nil {
		return Info{}, err
	}
	targetAttribute, err := s.TargetAttribute(ctx)
	if err != nil {
		return Info{}, err
	}
	return Info{
		TrainData:       trainData,
		SubjectArea:     subjectArea,
		TargetAttribute: targetAttribute,
	}, nil
}

func (s *InfoService) readTextObject(ctx context.Context, object string) (string, error) {
	path := filepath.Join(s.dataDir, object)
	if err := storage.DownloadToPath(ctx, s.blobs.PrivateURL(object), path); err != nil {
		return "", err
	}
	text, err := storage.ReadText(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
