// internal/srs/scheduler_test.go
package srs

import (
	"testing"
	"time"

	"go_5_quiz_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVocabulary() model.Vocabulary {
	return model.Vocabulary{
		Word:          "apple",
		Translation:   "りんご",
		IntervalDays:  0,
		EaseFactor:    2.5,
		LearningStage: 0,
	}
}

func TestScheduler_Apply_LearningProgression(t *testing.T) {
	s := NewScheduler()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := newVocabulary()

	// 正解を重ねるたびに段階が進み、分〜時間単位の間隔が置かれる
	for i := 0; i < model.MaxLearningStage-1; i++ {
		v = s.Apply(v, true, now)
		assert.Equal(t, i+1, v.LearningStage)
		assert.Equal(t, 0.0, v.IntervalDays, "学習段階の間は日単位の間隔を持たない")
		assert.Equal(t, now.Add(DefaultLearningSteps[i]), v.NextReview)
	}

	// 8回目の正解で卒業: 間隔1日・易しさ係数2.5
	v = s.Apply(v, true, now)
	assert.Equal(t, model.MaxLearningStage, v.LearningStage)
	assert.Equal(t, 1.0, v.IntervalDays)
	assert.Equal(t, 2.5, v.EaseFactor)
	assert.Equal(t, now.Add(24*time.Hour), v.NextReview)

	// 9回目の正解（復習）: 間隔が係数倍に伸びる
	v = s.Apply(v, true, now)
	assert.Equal(t, 2.5, v.IntervalDays)
	assert.Equal(t, now.Add(60*time.Hour), v.NextReview)

	// さらに正解: 2.5 * 2.5 = 6.25日
	v = s.Apply(v, true, now)
	assert.InDelta(t, 6.25, v.IntervalDays, 1e-9)
}

func TestScheduler_Apply_FailureResets(t *testing.T) {
	s := NewScheduler()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 復習段階まで進んだ語彙
	v := newVocabulary()
	for i := 0; i < model.MaxLearningStage+2; i++ {
		v = s.Apply(v, true, now)
	}
	require.Equal(t, model.MaxLearningStage, v.LearningStage)
	require.Greater(t, v.IntervalDays, 1.0)

	// 不正解で段階と間隔がリセットされ、即時再出題になる
	v = s.Apply(v, false, now)
	assert.Equal(t, 0, v.LearningStage)
	assert.Equal(t, 0.0, v.IntervalDays)
	assert.Equal(t, now, v.NextReview)
	assert.InDelta(t, 2.3, v.EaseFactor, 1e-9, "不正解で係数が下がる")
}

func TestScheduler_Apply_EaseFactorFloor(t *testing.T) {
	s := NewScheduler()
	now := time.Now()
	v := newVocabulary()

	// 何度失敗しても係数は下限を割らない
	for i := 0; i < 20; i++ {
		v = s.Apply(v, false, now)
	}
	assert.Equal(t, MinEaseFactor, v.EaseFactor)
}

func TestScheduler_Apply_FloorThenGraduationResetsEase(t *testing.T) {
	s := NewScheduler()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := newVocabulary()

	// 失敗を重ねて係数を下限まで落とす
	for i := 0; i < 10; i++ {
		v = s.Apply(v, false, now)
	}
	require.Equal(t, MinEaseFactor, v.EaseFactor)
	require.Equal(t, 0, v.LearningStage)

	// 学習段階の間は下限のままで変化しない
	for i := 0; i < model.MaxLearningStage-1; i++ {
		v = s.Apply(v, true, now)
		assert.Equal(t, MinEaseFactor, v.EaseFactor)
	}

	// 卒業で係数は初期値に戻り、下限だった履歴は引き継がれない
	v = s.Apply(v, true, now)
	require.Equal(t, model.MaxLearningStage, v.LearningStage)
	assert.Equal(t, InitialEaseFactor, v.EaseFactor)
	assert.Equal(t, InitialIntervalDays, v.IntervalDays)

	// 以降の復習はリセット後の係数で伸びる
	v = s.Apply(v, true, now)
	assert.InDelta(t, 2.5, v.IntervalDays, 1e-9)
}

func TestScheduler_Apply_DoesNotMutateInput(t *testing.T) {
	s := NewScheduler()
	v := newVocabulary()
	before := v

	s.Apply(v, true, time.Now())
	assert.Equal(t, before, v)
}

func TestNewSchedulerWithSteps(t *testing.T) {
	t.Run("正常系: 設定値から間隔を組み立てる", func(t *testing.T) {
		s := NewSchedulerWithSteps([]int{2, 15}, 4)
		assert.Equal(t, []time.Duration{2 * time.Minute, 15 * time.Minute}, s.Steps)
		assert.Equal(t, 4, s.MaxStage)
	})

	t.Run("正常系: 空設定はデフォルトにフォールバック", func(t *testing.T) {
		s := NewSchedulerWithSteps(nil, 0)
		assert.Equal(t, DefaultLearningSteps, s.Steps)
		assert.Equal(t, model.MaxLearningStage, s.MaxStage)
	})

	t.Run("正常系: 間隔が足りない段階は最後の値を使う", func(t *testing.T) {
		s := NewSchedulerWithSteps([]int{1, 10}, 8)
		v := newVocabulary()
		v.LearningStage = 5
		now := time.Now()

		got := s.Apply(v, true, now)
		assert.Equal(t, now.Add(10*time.Minute), got.NextReview)
	})
}
