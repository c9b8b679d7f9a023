package ui

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/common-nighthawk/go-figure"
)

// bannerFonts are picked from at random, one per menu display.
var bannerFonts = []string{"standard", "slant", "doom", "small"} //nolint:gochecknoglobals

// Banner renders title in a randomly chosen font.
// A failing random source falls back to the first font.
func Banner(random io.Reader, title string) string {
	font := bannerFonts[0]

	if idx, err := rand.Int(random, big.NewInt(int64(len(bannerFonts)))); err == nil {
		font = bannerFonts[idx.Int64()]
	}

	return figure.NewFigure(title, font, false).String()
}
