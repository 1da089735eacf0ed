package analytics

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"education-backend-go/internal/storage"
)

const (
	testFraction = 0.2
	splitSeed    = 42
)

// Report is the assembled classification-quality report.
type Report struct {
	Table             ScoreTable        `json:"table"`
	ConfusionMatrices []ModelResult     `json:"confusion_matrices"`
	ROCImages         map[string]string `json:"roc_images"`
}

type ScoreTable struct {
	Name string     `json:"name"`
	Data []ScoreRow `json:"data"`
}

type ScoreRow struct {
	Scores
	Model string `json:"model"`
}

type ModelResult struct {
	Model       string                    `json:"model"`
	Matrix      map[string]map[string]int `json:"matrix"`
	ROCImageURL string                    `json:"roc_image_url,omitempty"`
}

// blobStore is the slice of the blob gateway the pipeline uses; tests
// substitute a failing fake.
type blobStore interface {
	UploadBytes(ctx context.Context, data []byte, name, extension string) (storage.AttachmentRef, error)
	PrivateURL(key string) string
}

// Service runs the report pipeline as a deterministic batch job.
type Service struct {
	blobs           blobStore
	dataDir         string
	trainDataObject string
}

func NewService(blobs blobStore, dataDir, trainDataObject string) *Service {
	return &Service{
		blobs:           blobs,
		dataDir:         dataDir,
		trainDataObject: trainDataObject,
	}
}

// LoadTrainData fetches the CSV resource from the blob store and parses
// it. Any failure here aborts the whole pipeline.
func (s *Service) LoadTrainData(ctx context.Context) (*Dataset, error) {
	path := filepath.Join(s.dataDir, s.trainDataObject)
	url := s.blobs.PrivateURL(s.trainDataObject)
	if err := storage.DownloadToPath(ctx, url, path); err != nil {
		return nil, err
	}
	return LoadCSV(path)
}

// Analyze runs the full pipeline: load, split, fit/predict three fixed
// classifiers, score, and assemble the report. A failed chart upload for
// one model is best effort and does not discard the other results; a
// failed fit aborts the run.
func (s *Service) Analyze(ctx context.Context) (*Report, error) {
	dataset, err := s.LoadTrainData(ctx)
	if err != nil {
		return nil, err
	}
	split := dataset.TrainTestSplit(testFraction, splitSeed)

	classifiers := []Classifier{
		NewKNN(5),
		NewLogisticRegression(1000),
		NewRandomForest(100, splitSeed),
	}

	report := &Report{
		Table:     ScoreTable{Name: "Classification error assessment"},
		ROCImages: map[string]string{},
	}
	for _, classifier := range classifiers {
		predicted, err := s.applyModel(classifier, split)
		if err != nil {
			return nil, err
		}

		report.Table.Data = append(report.Table.Data, ScoreRow{
			Scores: CalcScores(split.YTest, predicted),
			Model:  classifier.Name(),
		})

		fpr, tpr, auc := ROCCurve(split.YTest, predicted)
		imageURL := s.uploadROCChart(ctx, classifier.Name(), fpr, tpr, auc)
		if imageURL != "" {
			report.ROCImages[classifier.Name()] = imageURL
		}

		report.ConfusionMatrices = append(report.ConfusionMatrices, ModelResult{
			Model:       classifier.Name(),
			Matrix:      NewConfusionMatrix(split.YTest, predicted).AsMap(),
			ROCImageURL: imageURL,
		})
	}
	return report, nil
}

// applyModel fits and predicts. Features are standardized only for the
// distance-based classifier, with statistics fit on the training set.
func (s *Service) applyModel(classifier Classifier, split Split) ([]int, error) {
	xTrain, xTest := split.XTrain, split.XTest
	if _, ok := classifier.(*KNN); ok {
		scaler := &Scaler{}
		scaler.Fit(xTrain)
		xTrain = scaler.Transform(xTrain)
		xTest = scaler.Transform(xTest)
	}
	if err := classifier.Fit(xTrain, split.YTrain); err != nil {
		return nil, err
	}
	return classifier.Predict(xTest), nil
}

func (s *Service) uploadROCChart(ctx context.Context, modelName string, fpr, tpr []float64, auc float64) string {
	image, err := renderROCChart(modelName, fpr, tpr, auc)
	if err != nil {
		log.Printf("roc chart render for %s: %v", modelName, err)
		return ""
	}
	ref, err := s.blobs.UploadBytes(ctx, image, "roc_"+modelName, "png")
	if err != nil {
		log.Printf("roc chart upload for %s: %v", modelName, err)
		return ""
	}
	return ref.PublicURL
}

func renderROCChart(modelName string, fpr, tpr []float64, auc float64) ([]byte, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (AUC = %.4f)", modelName, auc)
	p.X.Label.Text = "False positive rate"
	p.Y.Label.Text = "True positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	points := make(plotter.XYs, len(fpr))
	for i := range fpr {
		points[i].X = fpr[i]
		points[i].Y = tpr[i]
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, err
	}
	p.Add(line, plotter.NewGrid())

	writer, err := p.WriterTo(5*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
