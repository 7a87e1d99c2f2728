package airbnb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPhotosFromContainer(t *testing.T) {
	p := ExtractPhotos(doc(t, `
		<div data-testid="pdp-images">
			<img src="https://a0.muscache.com/im/pictures/abc.jpg" data-rendered-width="800">
			<img src="https://a0.muscache.com/im/pictures/abc.jpg" data-rendered-width="800">
			<img src="https://a0.muscache.com/im/pictures/small.jpg" data-rendered-width="800">
			<img src="https://a0.muscache.com/im/pictures/narrow.jpg" data-rendered-width="120">
			<img src="https://a0.muscache.com/im/users/profile/me.jpg" data-rendered-width="400">
			<img src="/relative.jpg" data-original-uri="https://a0.muscache.com/im/pictures/original-1.jpeg" width="100">
			<img src="https://a0.muscache.com/airbnb/static/logo.png" width="300">
		</div>
		<img src="https://a0.muscache.com/im/pictures/outside.jpg" data-rendered-width="900">`))

	assert.Equal(t, []string{
		"https://a0.muscache.com/im/pictures/abc.jpg",
		"https://a0.muscache.com/im/pictures/original-1.jpeg",
	}, p.Photos)
}

func TestExtractPhotosUsesFirstMatchingContainer(t *testing.T) {
	p := ExtractPhotos(doc(t, `
		<div data-testid="pdp-images">
			<img src="https://a0.muscache.com/im/pictures/listing-A.jpg" data-rendered-width="800">
		</div>
		<div class="_skzmth">
			<img src="https://a0.muscache.com/im/pictures/other-listing-B.jpg" data-rendered-width="800">
		</div>`))

	assert.Equal(t, []string{"https://a0.muscache.com/im/pictures/listing-A.jpg"}, p.Photos)
}

func TestExtractPhotosSkipsEmptyContainers(t *testing.T) {
	p := ExtractPhotos(doc(t, `
		<div data-testid="pdp-images">
			<img src="https://a0.muscache.com/im/pictures/tiny.jpg" data-rendered-width="50">
		</div>
		<div class="_skzmth">
			<img src="https://a0.muscache.com/im/pictures/hero.jpg" data-rendered-width="800">
		</div>`))

	assert.Equal(t, []string{"https://a0.muscache.com/im/pictures/hero.jpg"}, p.Photos)
}

func TestExtractPhotosSiteWide(t *testing.T) {
	p := ExtractPhotos(doc(t, `
		<img src="https://a0.muscache.com/im/pictures/p1.jpg" data-rendered-width="1024">
		<img data-src="https://a0.muscache.com/im/pictures/p2.jpg" width="640">
		<img srcset="https://a0.muscache.com/im/pictures/p3.jpg 1x, https://a0.muscache.com/im/pictures/p3@2x.jpg 2x" data-rendered-width="300">
		<img src="https://cdn.example.com/banner.jpg" data-rendered-width="1200">
		<img src="https://a0.muscache.com/im/pictures/avatar-thumb.jpg" data-rendered-width="400">`))

	assert.Equal(t, []string{
		"https://a0.muscache.com/im/pictures/p1.jpg",
		"https://a0.muscache.com/im/pictures/p2.jpg",
		"https://a0.muscache.com/im/pictures/p3.jpg",
	}, p.Photos)
}

func TestExtractPhotosBackgroundAndSrcset(t *testing.T) {
	p := ExtractPhotos(doc(t, `<div style="background-image: url('https://a0.muscache.com/im/pictures/bg.jpg')"></div>`))
	assert.Equal(t, []string{"https://a0.muscache.com/im/pictures/bg.jpg"}, p.Photos)

	p = ExtractPhotos(doc(t, `<picture><source srcset="https://a0.muscache.com/im/pictures/s1.webp 1x"></picture>`))
	assert.Equal(t, []string{"https://a0.muscache.com/im/pictures/s1.webp"}, p.Photos)
}

func TestExtractPhotosNone(t *testing.T) {
	p := ExtractPhotos(doc(t, `<h1>Sem fotos</h1>`))
	assert.NotNil(t, p.Photos)
	assert.Empty(t, p.Photos)
}

func TestFilterPhotos(t *testing.T) {
	got := FilterPhotos([]string{
		"https://x.com/photo1.jpg",
		"https://x.com/photo1.jpg",
		"https://x.com/short",
		"https://x.com/u/profile.jpg",
		"https://x.com/brand/LOGO.png",
		"https://x.com/user/42/a.jpg",
		"https://x.com/avatar/a.jpg",
		"https://x.com/i/icon-star.svg",
		"  https://x.com/photo2.jpg ",
	})

	assert.Equal(t, []string{"https://x.com/photo1.jpg", "https://x.com/photo2.jpg"}, got)
	for _, u := range got {
		for _, bad := range photoFinalRejects {
			assert.False(t, strings.Contains(strings.ToLower(u), bad), u)
		}
	}
}
