package plasma

// History ring buffer dimensions.
const (
	HistoryRows   = 1000
	HistoryFields = 10
)

// History is a fixed-capacity ring of state snapshots. Once full, each push
// evicts the oldest row.
type History struct {
	rows  [HistoryRows][HistoryFields]float64
	head  int
	count int
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Push(row [HistoryFields]float64) {
	h.rows[h.head] = row
	h.head = (h.head + 1) % HistoryRows
	if h.count < HistoryRows {
		h.count++
	}
}

func (h *History) Len() int {
	return h.count
}

// At returns the i-th retained row, oldest first. i must be in [0, Len()).
func (h *History) At(i int) [HistoryFields]float64 {
	start := h.head - h.count
	if start < 0 {
		start += HistoryRows
	}
	return h.rows[(start+i)%HistoryRows]
}

func (h *History) Last() ([HistoryFields]float64, bool) {
	if h.count == 0 {
		return [HistoryFields]float64{}, false
	}
	return h.At(h.count - 1), true
}

// Channel copies out one field across all retained rows, oldest first.
func (h *History) Channel(field int) []float64 {
	out := make([]float64, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.At(i)[field]
	}
	return out
}

// Rows copies out all retained rows, oldest first.
func (h *History) Rows() [][]float64 {
	out := make([][]float64, h.count)
	for i := 0; i < h.count; i++ {
		row := h.At(i)
		out[i] = append([]float64(nil), row[:]...)
	}
	return out
}

func (h *History) Reset() {
	h.head = 0
	h.count = 0
}
