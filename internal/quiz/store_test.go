package quiz

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDispatchNotifiesListeners(t *testing.T) {
	st := NewStore()
	var names []string
	st.Subscribe(func(a Action, s State) {
		names = append(names, a.Name())
	})

	require.NoError(t, st.Dispatch(StartLoading{Topic: "Go"}))
	require.Error(t, st.Dispatch(Finish{}))
	require.NoError(t, st.Dispatch(SetQuestions{Questions: sampleQuestions(1)}))

	assert.Equal(t, []string{"SELECT_TOPIC", "SET_QUESTIONS"}, names)
	assert.Equal(t, uint64(2), st.Version())
}

func TestStoreStateIsCopy(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.Dispatch(StartLoading{Topic: "Go"}))
	require.NoError(t, st.Dispatch(SetQuestions{Questions: sampleQuestions(2)}))
	require.NoError(t, st.Dispatch(Answer{QuestionID: 0, Option: "x"}))

	s := st.State()
	s.Answers[1] = "x"
	s.Questions[0].Options[0] = "mutated"

	fresh := st.State()
	assert.Len(t, fresh.Answers, 1)
	assert.Equal(t, "w", fresh.Questions[0].Options[0])
}

func TestStoreConcurrentAnswers(t *testing.T) {
	const n = 50
	st := NewStore()
	require.NoError(t, st.Dispatch(StartLoading{Topic: "Go"}))
	require.NoError(t, st.Dispatch(SetQuestions{Questions: sampleQuestions(n)}))

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, st.Dispatch(Answer{QuestionID: id, Option: "x"}))
		}(i)
	}
	wg.Wait()

	s := st.State()
	assert.Len(t, s.Answers, n)
	assert.Equal(t, n, s.Score)
}
