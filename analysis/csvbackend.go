package analysis

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/tebeka/atexit"
)

// CSVBackend writes VP summaries to a CSV file.
type CSVBackend struct {
	file      *os.File
	csvWriter *csv.Writer
}

// NewCSVBackend creates a CSVBackend writing to filename + ".csv". The file
// is flushed at exit in case the caller forgets.
func NewCSVBackend(filename string) *CSVBackend {
	if filename == "" {
		return nil
	}

	b := &CSVBackend{}

	var err error
	b.file, err = os.OpenFile(filename+".csv",
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		panic(err)
	}

	b.csvWriter = csv.NewWriter(b.file)

	header := []string{"VP", "Count", "Mean", "Variance", "Min", "Max"}
	if err := b.csvWriter.Write(header); err != nil {
		panic(err)
	}

	atexit.Register(func() { b.Flush() })

	return b
}

// AddSummary appends one summary row.
func (b *CSVBackend) AddSummary(s VPSummary) {
	err := b.csvWriter.Write([]string{
		fmt.Sprintf("%d", s.VP),
		fmt.Sprintf("%d", s.Count),
		fmt.Sprintf("%.10f", s.Mean),
		fmt.Sprintf("%.10f", s.Variance),
		fmt.Sprintf("%.10f", s.Min),
		fmt.Sprintf("%.10f", s.Max),
	})
	if err != nil {
		panic(err)
	}
}

// Flush flushes the CSV writer.
func (b *CSVBackend) Flush() {
	b.csvWriter.Flush()
}
