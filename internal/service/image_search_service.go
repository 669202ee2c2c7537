package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/rs/zerolog/log"

	cfg "github.com/oakhaus/oakhaus-api/internal/config"
	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/repository"
)

// furnitureVocab maps vision labels and color names to catalog search terms.
// Labels outside this vocabulary are ignored so a photo's background (person,
// plant, window) never pollutes the search.
var furnitureVocab = map[string]string{
	"chair":         "chair",
	"armchair":      "armchair",
	"couch":         "sofa",
	"sofa":          "sofa",
	"table":         "table",
	"coffee table":  "coffee table",
	"dining table":  "dining table",
	"desk":          "desk",
	"bed":           "bed",
	"bed frame":     "bed",
	"bench":         "bench",
	"bookcase":      "bookcase",
	"shelf":         "shelf",
	"cabinet":       "cabinet",
	"cupboard":      "cabinet",
	"dresser":       "dresser",
	"drawer":        "dresser",
	"wardrobe":      "wardrobe",
	"closet":        "wardrobe",
	"stool":         "stool",
	"bar stool":     "bar stool",
	"ottoman":       "ottoman",
	"nightstand":    "nightstand",
	"lamp":          "lamp",
	"mirror":        "mirror",
	"rug":           "rug",
	"crib":          "crib",
	"rocking chair": "rocking chair",
	"recliner":      "recliner",
	"wood":          "wood",
	"oak":           "oak",
	"rattan":        "rattan",
	"leather":       "leather",
	"velvet":        "velvet",

	// dominant color names as reported by image properties
	"black":  "black",
	"white":  "white",
	"gray":   "gray",
	"grey":   "gray",
	"brown":  "brown",
	"beige":  "beige",
	"green":  "green",
	"blue":   "blue",
	"red":    "red",
	"yellow": "yellow",
	"orange": "orange",
	"pink":   "pink",
	"purple": "purple",
}

const (
	minLabelConfidence = 70.0
	maxDetectLabels    = 20
	maxDominantColors  = 2
)

// ImageSearchService matches catalog products against a customer photo using
// AWS Rekognition label detection plus dominant colors.
type ImageSearchService struct {
	products          *repository.ProductRepository
	rekognitionClient *rekognition.Client
}

func NewImageSearchService(products *repository.ProductRepository, apiCfg *cfg.Config) *ImageSearchService {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(apiCfg.AWS.RekognitionRegion),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load AWS SDK config")
	}

	return &ImageSearchService{
		products:          products,
		rekognitionClient: rekognition.NewFromConfig(awsCfg),
	}
}

// ImageSearchResult carries matched products plus the vision terms that
// produced them.
type ImageSearchResult struct {
	Products []models.ProductWithStock `json:"products"`
	Terms    []string                  `json:"terms"`
}

// Search detects labels and dominant colors in the image, filters them
// through the furniture vocabulary, and matches products on the surviving
// terms. A photo with no recognizable furniture yields an empty result, not
// an error.
func (s *ImageSearchService) Search(ctx context.Context, imageData []byte, limit int) (*ImageSearchResult, error) {
	if err := validateImage(imageData); err != nil {
		return nil, err
	}

	out, err := s.rekognitionClient.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: imageData},
		MaxLabels:     aws.Int32(maxDetectLabels),
		MinConfidence: aws.Float32(minLabelConfidence),
		Features: []types.DetectLabelsFeatureName{
			types.DetectLabelsFeatureNameGeneralLabels,
			types.DetectLabelsFeatureNameImageProperties,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("AWS DetectLabels failed")
		return nil, fmt.Errorf("vision provider error: %w", err)
	}

	terms := visionTerms(out)
	if len(terms) == 0 {
		return &ImageSearchResult{Products: []models.ProductWithStock{}, Terms: []string{}}, nil
	}

	products, err := s.products.SearchByTerms(terms, limit)
	if err != nil {
		return nil, err
	}
	return &ImageSearchResult{Products: products, Terms: terms}, nil
}

// visionTerms filters detected labels and dominant colors through the
// furniture vocabulary, preserving detection order and deduplicating.
func visionTerms(out *rekognition.DetectLabelsOutput) []string {
	seen := make(map[string]bool)
	var terms []string
	add := func(raw string) {
		term, ok := furnitureVocab[strings.ToLower(strings.TrimSpace(raw))]
		if ok && !seen[term] {
			seen[term] = true
			terms = append(terms, term)
		}
	}

	for _, label := range out.Labels {
		if label.Name != nil {
			add(*label.Name)
		}
	}

	if out.ImageProperties != nil {
		colors := out.ImageProperties.DominantColors
		if len(colors) > maxDominantColors {
			colors = colors[:maxDominantColors]
		}
		for _, color := range colors {
			if color.SimplifiedColor != nil {
				add(*color.SimplifiedColor)
			}
		}
	}
	return terms
}

// validateImage rejects oversized or undecodable uploads before they reach
// the vision provider.
func validateImage(imageData []byte) error {
	if len(imageData) == 0 {
		return errors.New("image is empty")
	}
	if len(imageData) > 10*1024*1024 {
		return errors.New("image size exceeds 10MB limit")
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return errors.New("invalid image format")
	}

	validFormats := map[string]bool{"jpeg": true, "png": true}
	if !validFormats[format] {
		return fmt.Errorf("unsupported image format: %s. Supported: jpg, jpeg, png", format)
	}

	return nil
}
