package als

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/alskit/internal/xmltree"
	"github.com/joshuapare/alskit/pkg/types"
)

// RootTag is the fixed wrapper tag at the root of every Ableton document.
const RootTag = "Ableton"

// xmlProlog is written verbatim, not through the serializer, to match the
// exact formatting of native Ableton files.
const xmlProlog = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// Document is the gzipped-XML container shared by Ableton file kinds. It
// owns the parsed tree: the <Ableton> wrapper and the single object element
// inside it.
type Document struct {
	root  *xmltree.Node
	inner *xmltree.Node
}

func loadDocument(r io.Reader) (*Document, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, types.Wrap(types.ErrKindFormat, err, "document is not gzip-compressed")
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, types.Wrap(types.ErrKindFormat, err, "failed to decompress document")
	}

	raw, err = normalizeEncoding(raw)
	if err != nil {
		return nil, types.Wrap(types.ErrKindFormat, err, "failed to decode document text")
	}

	root, err := xmltree.Parse(raw)
	if err != nil {
		return nil, types.Wrap(types.ErrKindFormat, err, "failed to parse document")
	}
	if root.Tag != RootTag {
		return nil, types.ErrNotAbleton
	}
	if len(root.Children) != 1 {
		return nil, types.Formatf("the %s wrapper must contain exactly one element, found %d", RootTag, len(root.Children))
	}
	return &Document{root: root, inner: root.Children[0]}, nil
}

// normalizeEncoding transcodes UTF-16 documents (identified by their BOM) to
// UTF-8 and strips a UTF-8 BOM. Native Ableton files are BOM-less UTF-8 and
// pass through untouched.
func normalizeEncoding(raw []byte) ([]byte, error) {
	if len(raw) < 2 {
		return raw, nil
	}
	hasBOM := (raw[0] == 0xFE && raw[1] == 0xFF) ||
		(raw[0] == 0xFF && raw[1] == 0xFE) ||
		bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if !hasBOM {
		return raw, nil
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Root returns the <Ableton> wrapper element.
func (d *Document) Root() *xmltree.Node { return d.root }

// Element returns the XML element representing the document's primary
// object.
func (d *Document) Element() *xmltree.Node { return d.inner }

// XML renders the uncompressed document text: prolog, body, and the trailing
// newline Ableton's writer emits.
func (d *Document) XML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlProlog)
	buf.Write(xmltree.Serialize(d.root))
	buf.WriteByte('\n')
	return buf.Bytes()
}

// Write gzips the document to w using the same prolog and trailing-newline
// conventions as native Ableton files.
func (d *Document) Write(w io.Writer) error {
	zw := gzip.NewWriter(w)
	if _, err := zw.Write(d.XML()); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// WriteFile writes the document to path, creating or truncating the file.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
