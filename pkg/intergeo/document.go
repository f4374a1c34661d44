package intergeo

import (
	"bytes"
	"io"
	"os"

	"github.com/beevik/etree"
	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/intergeo/pkg/errors"
)

// ArchiveEntry is the path of the construction inside an .i2g archive.
const ArchiveEntry = "construction/intergeo.xml"

// MaxDocumentSize bounds the uncompressed size of the construction inside
// an .i2g archive.
const MaxDocumentSize = 32 << 20

var zipMagic = []byte("PK\x03\x04")

// Document is a parsed construction with its two sections.
type Document struct {
	// Elements holds the point, line and circle definitions.
	Elements *etree.Element
	// Constraints holds the constraint nodes. It is nil when the document
	// has no constraints section.
	Constraints *etree.Element

	tree *etree.Document
}

// Load reads a construction from r. Both bare XML and .i2g zip archives
// are accepted.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document")
	}
	return Parse(data)
}

// LoadFile reads a construction from a file on disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path).About(path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path).About(path)
	}
	return Parse(data)
}

// Parse parses a construction from raw bytes, unpacking it first when the
// bytes are a zip archive.
func Parse(data []byte) (*Document, error) {
	if bytes.HasPrefix(data, zipMagic) {
		xml, err := unzip(data, MaxDocumentSize)
		if err != nil {
			return nil, err
		}
		data = xml
	}

	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse XML")
	}
	if tree.Root() == nil {
		return nil, errors.New(errors.ErrCodeMalformedDocument, "document has no root element")
	}

	elements := tree.FindElement("//elements")
	if elements == nil {
		return nil, errors.New(errors.ErrCodeMalformedDocument, "document has no elements section").About("elements")
	}
	return &Document{
		Elements:    elements,
		Constraints: tree.FindElement("//constraints"),
		tree:        tree,
	}, nil
}

// WriteTo serializes the document as indented XML.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.tree.Indent(2)
	return d.tree.WriteTo(w)
}

// unzip extracts ArchiveEntry, refusing entries larger than limit bytes
// whether declared in the header or found while inflating.
func unzip(data []byte, limit int64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open archive")
	}
	for _, f := range zr.File {
		if f.Name != ArchiveEntry {
			continue
		}
		if f.UncompressedSize64 > uint64(limit) {
			return nil, errTooLarge(limit)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", ArchiveEntry)
		}
		defer rc.Close()
		xml, err := io.ReadAll(io.LimitReader(rc, limit+1))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "extract %s", ArchiveEntry)
		}
		if int64(len(xml)) > limit {
			return nil, errTooLarge(limit)
		}
		return xml, nil
	}
	return nil, errors.New(errors.ErrCodeMalformedDocument, "archive has no %s", ArchiveEntry).About(ArchiveEntry)
}

func errTooLarge(limit int64) error {
	return errors.New(errors.ErrCodeInvalidInput, "%s exceeds %d bytes", ArchiveEntry, limit).About(ArchiveEntry)
}
