package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pygus/pygus-backend/internal/model"
)

// mapResolver serves URLs from a fixed map; unknown keys resolve to "".
type mapResolver struct {
	mu    sync.Mutex
	urls  map[string]string
	calls []string
}

func (r *mapResolver) ResolveURL(_ context.Context, prefix, filename string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := prefix + "/" + filename
	r.calls = append(r.calls, key)
	return r.urls[key]
}

func TestAssembleResolvesAllAssets(t *testing.T) {
	resolver := &mapResolver{urls: map[string]string{
		"tasks_images/CAFE.png":          "https://signed/img",
		"tasks_complete_audios/CAFE.mp3": "https://signed/word",
		"tasks_audios/CAFE/CA.mp3":       "https://signed/ca",
		"tasks_audios/CAFE/FE.mp3":       "https://signed/fe",
	}}
	asm := NewTaskAssembler(resolver)

	task := model.Task{
		ID:      7,
		Name:    "café",
		Phoneme: "F",
		Syllables: []model.Syllable{
			{Syllable: "ca", IsPhoneme: false},
			{Syllable: "fé", IsPhoneme: true},
		},
	}
	view := asm.Assemble(context.Background(), task)

	assert.Equal(t, uint64(7), view.ID)
	assert.Equal(t, "café", view.Name)
	assert.Equal(t, "F", view.Phoneme)
	assert.Equal(t, "https://signed/img", view.ImgURL)
	assert.Equal(t, "https://signed/word", view.AudioURL)
	require.Len(t, view.Syllables, 2)
	assert.Equal(t, "ca", view.Syllables[0].Syllable)
	assert.Equal(t, "https://signed/ca", view.Syllables[0].AudioURL)
	assert.True(t, view.Syllables[1].IsPhoneme)
	assert.Equal(t, "https://signed/fe", view.Syllables[1].AudioURL)
	assert.Len(t, resolver.calls, 4)
}

func TestAssembleMissingAssetsYieldEmptyURLs(t *testing.T) {
	asm := NewTaskAssembler(&mapResolver{urls: map[string]string{}})

	task := model.Task{ID: 1, Name: "bola", Phoneme: "B",
		Syllables: []model.Syllable{{Syllable: "bo"}, {Syllable: "la"}}}
	view := asm.Assemble(context.Background(), task)

	// A task whose media was never uploaded still assembles.
	assert.Equal(t, "", view.ImgURL)
	assert.Equal(t, "", view.AudioURL)
	require.Len(t, view.Syllables, 2)
	for _, s := range view.Syllables {
		assert.Equal(t, "", s.AudioURL)
	}
}

func TestAssemblePreservesSyllableOrder(t *testing.T) {
	asm := NewTaskAssembler(&mapResolver{urls: map[string]string{}})
	task := model.Task{Name: "passarinho", Phoneme: "S", Syllables: []model.Syllable{
		{Syllable: "pa"}, {Syllable: "ssa"}, {Syllable: "ri"}, {Syllable: "nho"},
	}}
	view := asm.Assemble(context.Background(), task)

	require.Len(t, view.Syllables, 4)
	for i, want := range []string{"pa", "ssa", "ri", "nho"} {
		assert.Equal(t, want, view.Syllables[i].Syllable)
	}
}

func TestGroupByPhoneme(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{ID: 1, Name: "sapo", Phoneme: "S", CreatedAt: now},
		{ID: 2, Name: "rato", Phoneme: "R", CreatedAt: now},
		{ID: 3, Name: "sino", Phoneme: "S", CreatedAt: now},
		{ID: 4, Name: "rosa", Phoneme: "R", CreatedAt: now},
		{ID: 5, Name: "lua", Phoneme: "L", CreatedAt: now},
	}
	groups := GroupByPhoneme(tasks)

	// Group order follows first occurrence; members keep query order.
	require.Len(t, groups, 3)
	assert.Equal(t, "S", groups[0].Phoneme)
	assert.Equal(t, "R", groups[1].Phoneme)
	assert.Equal(t, "L", groups[2].Phoneme)

	total := 0
	for _, g := range groups {
		for _, task := range g.Tasks {
			assert.Equal(t, g.Phoneme, task.Phoneme)
			total++
		}
	}
	assert.Equal(t, len(tasks), total)

	assert.Equal(t, uint64(1), groups[0].Tasks[0].ID)
	assert.Equal(t, uint64(3), groups[0].Tasks[1].ID)
}

func TestGroupByPhonemeEmpty(t *testing.T) {
	assert.Empty(t, GroupByPhoneme(nil))
}
