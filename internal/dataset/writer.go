package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/BoxStack/internal/model"
)

// WriteDat writes p in the instance file format read by importer.ParseDat.
func WriteDat(w io.Writer, p model.Problem) error {
	bw := bufio.NewWriter(w)

	nBins := p.NBins
	if nBins == 0 {
		nBins = 1
	}
	nItems := p.NItems
	if nItems == 0 {
		nItems = len(p.Items)
	}
	volume := p.TotalVolume
	if volume == 0 {
		volume = p.ItemVolume()
	}

	fmt.Fprintf(bw, "Bin size: %d %d %d\n", p.BinSize[0], p.BinSize[1], p.BinSize[2])
	fmt.Fprintf(bw, "Number of bins: %d\n", nBins)
	fmt.Fprintf(bw, "Number of items per bin: %d\n", nItems)
	fmt.Fprintf(bw, "Total volume of items: %d\n", volume)
	fmt.Fprintln(bw, "Items (length width height):")
	for _, it := range p.Items {
		fmt.Fprintf(bw, "%d %d %d\n", it.Size[0], it.Size[1], it.Size[2])
	}
	return bw.Flush()
}

// SaveDat writes p to path, creating or truncating the file.
func SaveDat(path string, p model.Problem) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create instance file: %w", err)
	}
	if err := WriteDat(f, p); err != nil {
		f.Close()
		return fmt.Errorf("failed to write instance file: %w", err)
	}
	return f.Close()
}
