// Package service builds the read models served by the task endpoints.
package service

import (
	"context"
	"sync"

	"github.com/pygus/pygus-backend/internal/model"
	"github.com/pygus/pygus-backend/internal/storage"
	"github.com/pygus/pygus-backend/internal/textutil"
)

// AssetResolver locates a stored asset and returns a time-limited URL, or ""
// when the asset is absent or the lookup failed. Satisfied by *storage.AssetStore.
type AssetResolver interface {
	ResolveURL(ctx context.Context, prefix, filename string) string
}

// TaskAssembler turns task records into fully resolved views.
type TaskAssembler struct {
	Assets AssetResolver
}

func NewTaskAssembler(assets AssetResolver) *TaskAssembler {
	return &TaskAssembler{Assets: assets}
}

// Assemble resolves the image URL, the whole-word audio URL and one audio URL
// per syllable for a task. The lookups are independent, so they are issued
// concurrently and joined before the view is built; there is no partial-result
// short-circuiting. Individual lookup failures surface as empty URLs, never as
// an error: a task whose media was never uploaded is a valid result.
func (a *TaskAssembler) Assemble(ctx context.Context, task model.Task) model.TaskView {
	name := textutil.Normalize(task.Name)

	view := model.TaskView{
		ID:        task.ID,
		Name:      task.Name,
		Phoneme:   task.Phoneme,
		Syllables: make([]model.SyllableView, len(task.Syllables)),
	}

	var wg sync.WaitGroup
	wg.Add(2 + len(task.Syllables))
	go func() {
		defer wg.Done()
		view.ImgURL = a.Assets.ResolveURL(ctx, storage.ImagePrefix, name+".png")
	}()
	go func() {
		defer wg.Done()
		view.AudioURL = a.Assets.ResolveURL(ctx, storage.WordAudioPrefix, name+".mp3")
	}()
	for i, syl := range task.Syllables {
		// Each goroutine writes its own slice slot, so no locking is needed.
		go func(i int, syl model.Syllable) {
			defer wg.Done()
			view.Syllables[i] = model.SyllableView{
				Syllable:  syl.Syllable,
				IsPhoneme: syl.IsPhoneme,
				AudioURL: a.Assets.ResolveURL(ctx,
					storage.SyllableAudioPrefix+"/"+name,
					textutil.Normalize(syl.Syllable)+".mp3"),
			}
		}(i, syl)
	}
	wg.Wait()

	return view
}

// GroupByPhoneme buckets task summaries by their phoneme attribute. Group
// order follows the first occurrence of each phoneme; within a group the
// record order of the input is preserved. Summaries carry no asset URLs to
// keep the list view cheap.
func GroupByPhoneme(tasks []model.Task) []model.PhonemeGroup {
	groups := []model.PhonemeGroup{}
	index := map[string]int{}
	for _, t := range tasks {
		i, ok := index[t.Phoneme]
		if !ok {
			i = len(groups)
			index[t.Phoneme] = i
			groups = append(groups, model.PhonemeGroup{Phoneme: t.Phoneme})
		}
		groups[i].Tasks = append(groups[i].Tasks, Summarize(t))
	}
	return groups
}

// Summarize converts a record to its thin list representation.
func Summarize(t model.Task) model.TaskSummary {
	return model.TaskSummary{
		ID:        t.ID,
		Name:      t.Name,
		Phoneme:   t.Phoneme,
		Syllables: t.Syllables,
		CreatedAt: t.CreatedAt,
	}
}
