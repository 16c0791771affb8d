package intake

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"ontologycatalog/src/domain"
)

// MaxFileSize é o teto de um upload de dataset (10 MiB, inclusivo).
const MaxFileSize int64 = 10 << 20

var AllowedExtensions = []string{".owl", ".rdf", ".ttl", ".json-ld", ".jsonld"}

var (
	ErrInvalidFileType = errors.New("Invalid file type. Only OWL, RDF, TTL, and JSON-LD files are allowed.")
	ErrFileTooLarge    = errors.New("File too large. Maximum size is 10 MB.")
	ErrNoFile          = errors.New("No file uploaded")
)

// Upload é o metadado que sobra de um arquivo aceito; o conteúdo é descartado.
type Upload struct {
	Filename string
	Bytes    int64
	Size     string
}

// ValidateFilename checa a extensão (case-insensitive) contra a allow-list.
func ValidateFilename(filename string) error {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return ErrNoFile
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}

	return ErrInvalidFileType
}

// FormatSize converte bytes para MB com uma casa decimal: 2516582 -> "2.4 MB".
func FormatSize(bytes int64) string {
	megabytes := float64(bytes) / (1024 * 1024)
	return strconv.FormatFloat(megabytes, 'f', 1, 64) + " MB"
}

// Inspect consome o stream até o fim sem guardar nada, abortando assim que o
// limite é ultrapassado.
func Inspect(filename string, content io.Reader) (Upload, error) {
	if err := ValidateFilename(filename); err != nil {
		return Upload{}, err
	}

	read, err := io.Copy(io.Discard, io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		return Upload{}, fmt.Errorf("intake.Inspect - failed to read %s: %w", filename, err)
	}

	if read > MaxFileSize {
		return Upload{}, ErrFileTooLarge
	}

	return Upload{
		Filename: filepath.Base(filename),
		Bytes:    read,
		Size:     FormatSize(read),
	}, nil
}

// NextFile avança o multipart até a primeira parte de arquivo do campo informado.
// Partes anteriores são descartadas sem serem bufferizadas.
func NextFile(reader *multipart.Reader, field string) (*multipart.Part, error) {
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoFile
		}
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) || errors.Is(err, multipart.ErrMessageTooLarge) {
				return nil, ErrFileTooLarge
			}
			return nil, fmt.Errorf("%w: malformed multipart body: %v", domain.ErrInvalidInput, err)
		}

		if part.FormName() == field && part.FileName() != "" {
			return part, nil
		}
		part.Close()
	}
}
