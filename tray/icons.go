package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"runtime"
)

var (
	iconIdle   []byte
	iconTyping []byte
	iconPaused []byte
)

func init() {
	transparent := color.RGBA{A: 0}
	green := color.RGBA{R: 52, G: 199, B: 89, A: 255}
	amber := color.RGBA{R: 255, G: 204, B: 0, A: 255}
	iconIdle = renderIcon(22, &transparent, 22.0/8, false)
	iconTyping = renderIcon(22, &green, 22.0/6.5, false)
	iconPaused = renderIcon(22, &amber, 22.0/6.5, true)

	if runtime.GOOS == "windows" {
		iconIdle = pngToICO(iconIdle, 22)
		iconTyping = pngToICO(iconTyping, 22)
		iconPaused = pngToICO(iconPaused, 22)
	}
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic("encodePNG: " + err.Error())
	}
	return buf.Bytes()
}

func renderIcon(size int, dot *color.RGBA, dotR float64, bars bool) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cx, cy := float64(size)/2, float64(size)/2
	r := float64(size)/2 - 1
	barHW := float64(size) / 14
	barGap := float64(size) / 9
	for y := range size {
		for x := range size {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			d := math.Hypot(fx-cx, fy-cy)
			if bars && d <= dotR {
				// Two pause bars punched out of the dot
				lx := math.Abs(fx - cx)
				if lx >= barGap-barHW && lx <= barGap+barHW {
					img.Set(x, y, color.Black)
					continue
				}
			}
			if dot != nil && d <= dotR {
				img.Set(x, y, dot)
			} else if d <= r {
				img.Set(x, y, color.Black)
			}
		}
	}
	return encodePNG(img)
}

// pngToICO wraps a PNG in a single-image ICO container. Windows tray icons
// must be ICO; Vista and later accept PNG-compressed entries.
func pngToICO(data []byte, size int) []byte {
	var buf bytes.Buffer
	dim := uint8(size)
	if size >= 256 {
		dim = 0
	}
	// ICONDIR
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // type: icon
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // count
	// ICONDIRENTRY
	buf.WriteByte(dim)                                         // width
	buf.WriteByte(dim)                                         // height
	buf.WriteByte(0)                                           // palette
	buf.WriteByte(0)                                           // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1))         // planes
	binary.Write(&buf, binary.LittleEndian, uint16(32))        // bpp
	binary.Write(&buf, binary.LittleEndian, uint32(len(data))) // image size
	binary.Write(&buf, binary.LittleEndian, uint32(6+16))      // image offset
	buf.Write(data)
	return buf.Bytes()
}
