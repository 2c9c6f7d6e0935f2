package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionService is the vision fallback: when the completion model
// yields nothing parseable for a food photo, its top detected label stands
// in for the food name.
type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService(client *rekognition.Client) *RekognitionService {
	return &RekognitionService{client: client}
}

// DetectFoodLabels returns up to 5 labels with >= 75% confidence.
func (r *RekognitionService) DetectFoodLabels(ctx context.Context, image []byte) ([]string, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		labels = append(labels, aws.ToString(l.Name))
	}
	return labels, nil
}
