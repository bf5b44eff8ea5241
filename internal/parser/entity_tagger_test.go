package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser-go/internal/types"
)

// TestTagPerson 文档头部形似人名的行被标注为PERSON
func TestTagPerson(t *testing.T) {
	text := "John Smith\njohn@x.com\nExperienced engineer since 2015"

	spans := NewHeuristicEntityTagger().Tag(text)

	require.NotEmpty(t, spans)
	assert.Equal(t, types.EntityPerson, spans[0].Label)
	assert.Equal(t, "John Smith", spans[0].Text)
	assert.Equal(t, 0, spans[0].Start)
}

// TestTagPersonSkipsDeepLines 第10行之后不再找人名
func TestTagPersonSkipsDeepLines(t *testing.T) {
	text := ""
	for i := 0; i < 12; i++ {
		text += "filler line\n"
	}
	text += "John Smith\n"

	spans := NewHeuristicEntityTagger().Tag(text)
	for _, span := range spans {
		assert.NotEqual(t, types.EntityPerson, span.Label)
	}
}

// TestTagLocation "City, ST"形态在全文任意位置被标注
func TestTagLocation(t *testing.T) {
	text := "Worked across teams.\nRelocated to Austin, TX in spring."

	spans := NewHeuristicEntityTagger().Tag(text)

	var locations []string
	for _, span := range spans {
		if span.Label == types.EntityLocation {
			locations = append(locations, span.Text)
		}
	}
	require.NotEmpty(t, locations)
	assert.Contains(t, locations[0], "Austin, TX")
}
