package imagepkg

const (
	titleStartSize = 150
	titleMinSize   = 60
	titleMaxSize   = 200
	titleStep      = 2
	titleMargin    = 40
	dateGap        = 20
	dateMinSize    = 30
	ellipsis       = "..."
)

// MeasureFunc reports the rendered width and height of text at a pixel size.
type MeasureFunc func(text string, size int) (width, height int)

// TitleFit is the outcome of fitting a banner title. Truncated is set when the
// title could not fit even at the minimum size and was shortened.
type TitleFit struct {
	Size        int
	Text        string
	Width       int
	Height      int
	Truncated   bool
	ShowDate    bool
	DateSize    int
	BlockHeight int
}

func dateSize(titleSize int) int {
	return max(titleSize/2, dateMinSize)
}

func blockHeight(textHeight, size int, showDate bool) int {
	if !showDate {
		return textHeight
	}
	return textHeight + dateSize(size) + dateGap
}

// FitTitle picks the font size for title on a canvas canvasWidth pixels wide.
//
// The search runs in two phases. Shrinking steps down from the nominal size
// until the title fits the width; if it still does not fit at the minimum
// size, the title is cut with an ellipsis and no growing happens. Otherwise
// growing steps up while both the width and the title band height still fit.
func FitTitle(title string, canvasWidth int, showDate bool, measure MeasureFunc) TitleFit {
	maxWidth := canvasWidth - titleMargin

	size := titleStartSize
	w, h := measure(title, size)
	for w > maxWidth && size-titleStep >= titleMinSize {
		size -= titleStep
		w, h = measure(title, size)
	}

	fit := TitleFit{Size: size, Text: title, Width: w, Height: h, ShowDate: showDate}
	if w > maxWidth {
		fit = truncateTitle(title, size, maxWidth, w, measure)
		fit.ShowDate = showDate
	} else {
		for size+titleStep <= titleMaxSize {
			next := size + titleStep
			nw, nh := measure(title, next)
			if nw > maxWidth || blockHeight(nh, next, showDate) > TitleBandHeight {
				break
			}
			fit.Size, fit.Width, fit.Height = next, nw, nh
			size = next
		}
	}

	fit.DateSize = dateSize(fit.Size)
	fit.BlockHeight = blockHeight(fit.Height, fit.Size, showDate)
	return fit
}

// truncateTitle estimates how many characters fit from the measured width,
// then trims further until the shortened title really fits.
func truncateTitle(title string, size, maxWidth, width int, measure MeasureFunc) TitleFit {
	runes := []rune(title)
	n := int(float64(len(runes)) * float64(maxWidth) / float64(width))
	n = min(max(n, 0), len(runes))

	text := string(runes[:n]) + ellipsis
	w, h := measure(text, size)
	for w > maxWidth && n > 0 {
		n--
		text = string(runes[:n]) + ellipsis
		w, h = measure(text, size)
	}
	return TitleFit{Size: size, Text: text, Width: w, Height: h, Truncated: true}
}
