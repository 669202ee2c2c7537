package service

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detectOutput(labels []string, colors []string) *rekognition.DetectLabelsOutput {
	out := &rekognition.DetectLabelsOutput{}
	for _, l := range labels {
		out.Labels = append(out.Labels, types.Label{Name: aws.String(l)})
	}
	if len(colors) > 0 {
		out.ImageProperties = &types.DetectLabelsImageProperties{}
		for _, c := range colors {
			out.ImageProperties.DominantColors = append(out.ImageProperties.DominantColors,
				types.DominantColor{SimplifiedColor: aws.String(c)})
		}
	}
	return out
}

func TestVisionTermsFiltersNonFurnitureLabels(t *testing.T) {
	out := detectOutput([]string{"Person", "Couch", "Houseplant", "Table", "Window"}, nil)

	terms := visionTerms(out)
	assert.Equal(t, []string{"sofa", "table"}, terms)
}

func TestVisionTermsIncludesDominantColors(t *testing.T) {
	out := detectOutput([]string{"Chair"}, []string{"Green", "White"})

	terms := visionTerms(out)
	assert.Equal(t, []string{"chair", "green", "white"}, terms)
}

func TestVisionTermsCapsDominantColors(t *testing.T) {
	out := detectOutput(nil, []string{"Green", "White", "Black", "Brown"})

	terms := visionTerms(out)
	assert.Equal(t, []string{"green", "white"}, terms)
}

func TestVisionTermsDeduplicates(t *testing.T) {
	out := detectOutput([]string{"Couch", "Sofa", "couch"}, nil)

	terms := visionTerms(out)
	assert.Equal(t, []string{"sofa"}, terms)
}

func TestVisionTermsEmptyWhenNothingRecognized(t *testing.T) {
	out := detectOutput([]string{"Person", "Dog", "Car"}, nil)
	assert.Empty(t, visionTerms(out))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateImageAcceptsPNG(t *testing.T) {
	assert.NoError(t, validateImage(pngBytes(t)))
}

func TestValidateImageRejectsEmpty(t *testing.T) {
	assert.Error(t, validateImage(nil))
}

func TestValidateImageRejectsOversized(t *testing.T) {
	assert.Error(t, validateImage(make([]byte, 10*1024*1024+1)))
}

func TestValidateImageRejectsGarbage(t *testing.T) {
	assert.Error(t, validateImage([]byte("definitely not an image")))
}
