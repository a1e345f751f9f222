// This program generates test images for integration testing.
// Each image has a distinct colour cast so the recommenders pick different LUTs.
//
//go:build ignore

package main

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

func main() {
	dir := "testdata"
	os.MkdirAll(dir, 0755)

	// Pure red, used for exact feature checks (PNG keeps it lossless)
	generateSolidColor(filepath.Join(dir, "uniform_red.png"), color.RGBA{255, 0, 0, 255})

	// A warm orange/red gradient — sunset-like
	generateSunset(filepath.Join(dir, "warm_sunset.png"))

	// A dark blue image — night-like, cool cast
	generateSolidColor(filepath.Join(dir, "cool_night.png"), color.RGBA{15, 20, 60, 255})

	// A green, textured image — strong green push
	generateForest(filepath.Join(dir, "forest.jpg"))

	// A high-contrast black and white checkerboard
	generateChecker(filepath.Join(dir, "checker.png"))

	// A non-image file for skip testing
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not an image"), 0644)
}

func generateSunset(path string) {
	img := image.NewRGBA(image.Rect(0, 0, 224, 224))
	for y := 0; y < 224; y++ {
		for x := 0; x < 224; x++ {
			r := uint8(255 - y/3)
			g := uint8(100 + int(80*math.Sin(float64(y)/30)))
			b := uint8(50 + y/4)
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}
	savePNG(path, img)
}

func generateSolidColor(path string, c color.RGBA) {
	img := image.NewRGBA(image.Rect(0, 0, 224, 224))
	for y := 0; y < 224; y++ {
		for x := 0; x < 224; x++ {
			img.Set(x, y, c)
		}
	}
	if filepath.Ext(path) == ".png" {
		savePNG(path, img)
	} else {
		saveJPEG(path, img)
	}
}

func generateForest(path string) {
	img := image.NewRGBA(image.Rect(0, 0, 224, 224))
	for y := 0; y < 224; y++ {
		for x := 0; x < 224; x++ {
			g := uint8(120 + int(80*math.Sin(float64(x)/20)*math.Cos(float64(y)/25)))
			r := uint8(40 + int(30*math.Sin(float64(y)/30)))
			img.Set(x, y, color.RGBA{r, g, 20, 255})
		}
	}
	saveJPEG(path, img)
}

func generateChecker(path string) {
	img := image.NewRGBA(image.Rect(0, 0, 224, 224))
	for y := 0; y < 224; y++ {
		for x := 0; x < 224; x++ {
			c := color.RGBA{20, 20, 20, 255}
			if (x/28+y/28)%2 == 0 {
				c = color.RGBA{235, 235, 235, 255}
			}
			img.Set(x, y, c)
		}
	}
	savePNG(path, img)
}

func saveJPEG(path string, img image.Image) {
	f, _ := os.Create(path)
	defer f.Close()
	jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

func savePNG(path string, img image.Image) {
	f, _ := os.Create(path)
	defer f.Close()
	png.Encode(f, img)
}
