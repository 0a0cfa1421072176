package parser

import (
	"iter"

	"modscan/internal/definition"
)

// binaryExtensions lists asset formats that are never read as text.
var binaryExtensions = map[string]bool{
	".dds":  true,
	".png":  true,
	".tga":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
	".ogg":  true,
	".wav":  true,
	".mp3":  true,
	".ttf":  true,
	".otf":  true,
	".fnt":  true,
	".mesh": true,
	".anim": true,
	".cur":  true,
	".ani":  true,
	".psd":  true,
	".bin":  true,
	".xac":  true,
	".dat":  true,
}

// IsBinaryFile reports whether file has a known asset extension.
func IsBinaryFile(file string) bool {
	return binaryExtensions[definition.Ext(file)]
}

// BinaryParser emits a single Binary definition per asset. The Id is the file
// name without its extension.
type BinaryParser struct{}

func NewBinaryParser() *BinaryParser { return &BinaryParser{} }

func (p *BinaryParser) Name() string { return "binary" }

func (p *BinaryParser) CanParse(args Args) bool {
	return IsBinaryFile(args.File)
}

func (p *BinaryParser) Parse(args Args) iter.Seq[*definition.Definition] {
	name := definition.FileName(args.File)
	return BinaryDefinition(args, name[:len(name)-len(definition.Ext(name))])
}

// BinaryDefinition yields the one Binary definition of args with the given Id.
func BinaryDefinition(args Args, id string) iter.Seq[*definition.Definition] {
	e := NewEmitter(args)
	return Single(e.New(id, "", definition.Binary, definition.FormatType(args.File, definition.BinaryType)))
}
