package service

import (
	"errors"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Only the envelope is checked here; stage contents are repaired by
// roadmap.NormalizeStage.
const roadmapResponseSchema = `{
  "type": "object",
  "required": ["roadmap", "summary"],
  "properties": {
    "roadmap": {"type": "array", "items": {"type": "object"}},
    "summary": {"type": "object"}
  }
}`

var roadmapSchema = mustSchema(roadmapResponseSchema)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(err)
	}
	return schema
}

var ErrInvalidRoadmapShape = errors.New("invalid roadmap structure")

func validateRoadmapShape(doc []byte) error {
	res, err := roadmapSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.Join(ErrInvalidRoadmapShape, errors.New(strings.Join(msgs, "; ")))
}
