package merge

import (
	"strings"

	"github.com/arthur-debert/aidot/pkg/content"
	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/jsonobj"
	"github.com/arthur-debert/aidot/pkg/types"
)

// JSONKind says how a section's files fold into a JSON document
type JSONKind int

const (
	// JSONWrapped stores each file under WrapperKey, keyed by file stem
	JSONWrapped JSONKind = iota
	// JSONEntries stores each file at the top level, keyed by file stem
	JSONEntries
	// JSONFlat merges each file's top-level keys into the document
	JSONFlat
)

// JSONPart is one section's contribution to a JSON document
type JSONPart struct {
	Section    types.Section
	Kind       JSONKind
	WrapperKey string
	Strategy   types.MergeStrategy
	Files      []types.PresetFile
}

// KeyedJSON folds JSON preset files into one configuration file. Several
// sections may share a file; their parts are applied in order.
type KeyedJSON struct {
	// File is the slash-separated destination relative to the target
	File string
}

// Plan returns the single write for the document, or nil when no part has files.
// Later files win on identical keys. Replace resets what a part owns: the
// wrapper object for JSONWrapped, the whole document otherwise.
func (e KeyedJSON) Plan(fsys types.FS, targetDir string, parts []JSONPart) (*Write, error) {
	var sections []string
	for _, p := range parts {
		if len(p.Files) > 0 {
			sections = append(sections, string(p.Section))
		}
	}
	if len(sections) == 0 {
		return nil, nil
	}

	w := &Write{Display: e.File, Section: strings.Join(sections, "+")}

	doc := jsonobj.New()
	data, ok, err := readExisting(fsys, w.Target(targetDir))
	if err != nil {
		return nil, aierrors.Wrapf(err, aierrors.ErrFileRead, "cannot read %s", e.File)
	}
	if ok {
		if doc, err = jsonobj.Parse(data); err != nil {
			return nil, aierrors.Wrapf(err, aierrors.ErrJSONParse, "existing %s is not a valid JSON object", e.File)
		}
	}

	for _, p := range parts {
		if len(p.Files) == 0 {
			continue
		}
		if doc, err = e.applyPart(doc, p); err != nil {
			return nil, err
		}
	}

	if w.Content, err = doc.Pretty(); err != nil {
		return nil, aierrors.Wrapf(err, aierrors.ErrInternal, "cannot render %s", e.File)
	}
	return w, nil
}

func (e KeyedJSON) applyPart(doc *jsonobj.Object, p JSONPart) (*jsonobj.Object, error) {
	switch p.Kind {
	case JSONFlat:
		if p.Strategy == types.Replace {
			doc = jsonobj.New()
		}
		for _, f := range p.Files {
			obj, err := parseFile(f)
			if err != nil {
				return nil, err
			}
			doc.Merge(obj)
		}
		return doc, nil

	case JSONEntries:
		if p.Strategy == types.Replace {
			doc = jsonobj.New()
		}
		if err := setEntries(doc, p.Files); err != nil {
			return nil, err
		}
		return doc, nil

	default:
		nested := jsonobj.New()
		if p.Strategy != types.Replace {
			var err error
			if nested, err = doc.Object(p.WrapperKey); err != nil {
				return nil, aierrors.Wrapf(err, aierrors.ErrJSONParse, "%s: %q must be an object", e.File, p.WrapperKey)
			}
		}
		if err := setEntries(nested, p.Files); err != nil {
			return nil, err
		}
		if err := doc.SetObject(p.WrapperKey, nested); err != nil {
			return nil, aierrors.Wrapf(err, aierrors.ErrInternal, "cannot render %s", e.File)
		}
		return doc, nil
	}
}

func setEntries(target *jsonobj.Object, files []types.PresetFile) error {
	for _, f := range files {
		obj, err := parseFile(f)
		if err != nil {
			return err
		}
		if err := target.SetObject(content.Stem(f.RelativePath), obj); err != nil {
			return aierrors.Wrapf(err, aierrors.ErrInternal, "cannot render %s", f.RelativePath)
		}
	}
	return nil
}

func parseFile(f types.PresetFile) (*jsonobj.Object, error) {
	obj, err := jsonobj.Parse([]byte(f.Content))
	if err != nil {
		return nil, aierrors.Wrapf(err, aierrors.ErrJSONParse, "%s is not a valid JSON object", f.RelativePath).
			WithDetail("file", f.RelativePath)
	}
	return obj, nil
}
