package astio

import (
	"strconv"

	"github.com/tidwall/sjson"

	"groovystatic/pkg/errors"
)

// EncodeDiagnostics renders diags as a JSON array, one object per
// diagnostic, built incrementally with sjson.SetBytes rather than a
// struct-tagged marshal: the caller (cmd/groovytypec's --format=json)
// wants the same kind/message/position shape regardless of which Kind
// fired, and sjson lets each field be set independently without a
// parallel wire-format struct to keep in sync with errors.Diagnostic.
func EncodeDiagnostics(diags []*errors.Diagnostic) ([]byte, error) {
	doc := []byte("[]")
	for i, d := range diags {
		var err error
		path := func(field string) string { return strconv.Itoa(i) + "." + field }

		doc, err = sjson.SetBytes(doc, path("kind"), d.Kind.String())
		if err != nil {
			return nil, err
		}
		severity := "error"
		if d.Severity == errors.SeverityWarning {
			severity = "warning"
		}
		doc, err = sjson.SetBytes(doc, path("severity"), severity)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.SetBytes(doc, path("message"), d.Message)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.SetBytes(doc, path("line"), d.Pos.Line)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.SetBytes(doc, path("column"), d.Pos.Column)
		if err != nil {
			return nil, err
		}
		file := "<unknown>"
		if d.Pos.Source != nil {
			file = d.Pos.Source.DisplayPath()
		}
		doc, err = sjson.SetBytes(doc, path("file"), file)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.SetBytes(doc, path("runId"), d.RunID)
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}
