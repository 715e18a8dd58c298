package slice

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
)

// WriteFile writes record to path as an Arrow IPC file with a single
// record batch.
func WriteFile(record arrow.Record, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening output stream: %w", err)
	}

	writer, err := ipc.NewFileWriter(file, ipc.WithSchema(record.Schema()))
	if err != nil {
		file.Close()
		return fmt.Errorf("creating file writer: %w", err)
	}

	if err := writer.Write(record); err != nil {
		writer.Close()
		file.Close()
		return fmt.Errorf("writing Arrow record: %w", err)
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("closing Arrow file: %w", err)
	}
	return file.Close()
}
