package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alnah/go-nbdoc/internal/mime"
	"github.com/alnah/go-nbdoc/internal/notebook"
	"github.com/alnah/go-nbdoc/internal/tree"
	"github.com/alnah/go-nbdoc/internal/yamlutil"
)

// specialKeys are stored on the document instead of in front matter.
var specialKeys = []string{notebook.KeyKernelspec, notebook.KeyLanguageInfo, notebook.KeySourceMap}

// renderMetadata stores the special notebook keys on the document and, when
// enabled, emits the remaining metadata as a docinfo node.
func (s *state) renderMetadata() {
	for _, key := range specialKeys {
		if v, ok := s.nb.Metadata[key]; ok {
			s.doc.Set("nb_"+key, v)
		}
	}

	meta := s.elements.RenderNotebookMetadata(s.nb.Metadata)
	if !s.cfg.MetadataToFrontMatter {
		return
	}
	for _, key := range specialKeys {
		delete(meta, key)
	}
	if len(meta) == 0 {
		return
	}

	docinfo := tree.New(tree.KindDocinfo)
	for _, key := range meta.Keys() {
		docinfo.Append(s.frontMatterField(key, meta[key]))
	}
	tree.Stamp(docinfo, 1, s.source)
	s.builder.Append(docinfo)
}

// widgetsKey holds the saved Jupyter widget state in notebook metadata.
const widgetsKey = "widgets"

// renderWidgetState embeds the notebook's widget state once per document so
// widget views in the outputs can be displayed. Nothing is emitted unless the
// state carries at least one model.
func (s *state) renderWidgetState() {
	widgets, ok := s.nb.Metadata.Map(widgetsKey)
	if !ok {
		return
	}
	st, ok := widgets[mime.WidgetState].(map[string]any)
	if !ok {
		return
	}
	if models, _ := st["state"].(map[string]any); len(models) == 0 {
		return
	}

	payload, err := json.Marshal(st)
	if err != nil {
		s.logger.Warn("cannot encode widget state", "err", err)
		return
	}
	script := `<script type="` + mime.WidgetState + `">` + string(payload) + `</script>`
	n := rawNode(FormatHTML, script, 1, "jupyter_widget_state")
	n.Source = s.source
	s.builder.Append(n)
}

func (s *state) frontMatterField(key string, value any) *tree.Node {
	body := tree.New(tree.KindFieldBody)
	switch v := value.(type) {
	case nil:
	case string:
		body.Append(tree.New(tree.KindParagraph).Append(tree.NewText(v)))
	case bool, int, int64, float64:
		body.Append(tree.New(tree.KindParagraph).Append(tree.NewText(fmt.Sprint(v))))
	default:
		encoded, err := yamlutil.Marshal(v)
		if err != nil {
			s.logger.Warn("cannot encode front matter value", "key", key, "err", err)
			encoded = []byte(fmt.Sprint(v))
		}
		block := tree.New(tree.KindLiteralBlock)
		block.Text = strings.TrimRight(string(encoded), "\n")
		block.Set("language", "yaml")
		body.Append(block)
	}

	return tree.New(tree.KindField).Append(
		tree.New(tree.KindFieldName).Append(tree.NewText(key)),
		body,
	)
}
