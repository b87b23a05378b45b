package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/tourpack/constants"
	"github.com/joseph-ayodele/tourpack/internal/entity"
)

// LoadFile reads a .csv or .xlsx dataset from disk.
func LoadFile(path string) (entity.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return entity.Dataset{}, err
	}
	defer f.Close()

	switch constants.NormalizeExt(filepath.Ext(path)) {
	case "csv":
		return ReadCSV(bufio.NewReader(f))
	case "xlsx":
		return ReadXLSX(f, "")
	default:
		return entity.Dataset{}, fmt.Errorf("unsupported dataset format: %s", filepath.Ext(path))
	}
}
