package service

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/lunaria/arcana/internal/domain"
)

// colorBucket names a coarse hue/tone region for dominant-color
// reporting.
type colorBucket struct {
	name    string
	r, g, b float64
}

var colorBuckets = []colorBucket{
	{"black", 0.05, 0.05, 0.05},
	{"white", 0.95, 0.95, 0.95},
	{"grey", 0.5, 0.5, 0.5},
	{"red", 0.75, 0.15, 0.15},
	{"orange", 0.9, 0.55, 0.15},
	{"yellow", 0.9, 0.85, 0.2},
	{"green", 0.2, 0.6, 0.25},
	{"blue", 0.2, 0.35, 0.75},
	{"violet", 0.55, 0.25, 0.65},
	{"brown", 0.45, 0.3, 0.15},
	{"gold", 0.8, 0.65, 0.25},
}

const visualSampleStride = 4

// ExtractVisualProfile computes a model-free readout of a query image:
// dominant color buckets, mean brightness, RMS contrast, aspect ratio.
func ExtractVisualProfile(imageData []byte) (*domain.VisualProfile, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty image")
	}

	counts := make(map[string]int, len(colorBuckets))
	var lumaSum, lumaSqSum float64
	samples := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y += visualSampleStride {
		for x := bounds.Min.X; x < bounds.Max.X; x += visualSampleStride {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := float64(r16) / 65535
			g := float64(g16) / 65535
			b := float64(b16) / 65535

			luma := 0.299*r + 0.587*g + 0.114*b
			lumaSum += luma
			lumaSqSum += luma * luma
			samples++

			counts[nearestBucket(r, g, b)]++
		}
	}
	if samples == 0 {
		return nil, fmt.Errorf("empty image")
	}

	type bucketCount struct {
		name  string
		count int
	}
	ranked := make([]bucketCount, 0, len(counts))
	for name, n := range counts {
		ranked = append(ranked, bucketCount{name, n})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].count > ranked[j].count })

	var dominant []string
	for i, bc := range ranked {
		if i >= 3 {
			break
		}
		// Ignore buckets under 5% of samples.
		if float64(bc.count) < 0.05*float64(samples) {
			break
		}
		dominant = append(dominant, bc.name)
	}

	mean := lumaSum / float64(samples)
	variance := lumaSqSum/float64(samples) - mean*mean
	if variance < 0 {
		variance = 0
	}

	return &domain.VisualProfile{
		DominantColors: dominant,
		Brightness:     mean,
		Contrast:       math.Sqrt(variance),
		AspectRatio:    float64(width) / float64(height),
	}, nil
}

func nearestBucket(r, g, b float64) string {
	best, bestDist := colorBuckets[0].name, math.MaxFloat64
	for _, c := range colorBuckets {
		d := (r-c.r)*(r-c.r) + (g-c.g)*(g-c.g) + (b-c.b)*(b-c.b)
		if d < bestDist {
			best, bestDist = c.name, d
		}
	}
	return best
}
