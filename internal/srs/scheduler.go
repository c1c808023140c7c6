// internal/srs/scheduler.go
package srs

import (
	"time"

	"go_5_quiz_keep/internal/model"
)

const (
	// InitialIntervalDays は学習段階を卒業した直後の復習間隔（日）です。
	InitialIntervalDays = 1.0
	// InitialEaseFactor は卒業時にリセットされる易しさ係数です。
	InitialEaseFactor = 2.5
	// MinEaseFactor は易しさ係数の下限です。これ以上は下がりません。
	MinEaseFactor = 1.3
	// easePenalty は不正解1回あたりの易しさ係数の減少量です。
	easePenalty = 0.2
)

// DefaultLearningSteps は学習段階（0〜MaxLearningStage-1）の復習間隔です。
// 段階 n で正解したとき、Steps[n] 後に次の出題が来ます。
var DefaultLearningSteps = []time.Duration{
	1 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
	1 * time.Hour,
	3 * time.Hour,
	8 * time.Hour,
	12 * time.Hour,
}

// Scheduler は間隔反復のスケジュール計算を行います。
// 状態を持たない純粋な変換なので、同じ入力に対して常に同じ結果を返します。
type Scheduler struct {
	// Steps は学習段階ごとの復習間隔です。MaxStage 個に満たない場合は
	// 最後の要素が繰り返し使われます。
	Steps []time.Duration
	// MaxStage に到達すると学習段階を卒業し、日単位の復習に移行します。
	MaxStage int
}

// NewScheduler はデフォルト設定のスケジューラを返します。
func NewScheduler() *Scheduler {
	return &Scheduler{
		Steps:    DefaultLearningSteps,
		MaxStage: model.MaxLearningStage,
	}
}

// NewSchedulerWithSteps は設定から組み立てたスケジューラを返します。
// stepsMinutes が空の場合はデフォルトの間隔を使います。
func NewSchedulerWithSteps(stepsMinutes []int, maxStage int) *Scheduler {
	s := NewScheduler()
	if len(stepsMinutes) > 0 {
		steps := make([]time.Duration, len(stepsMinutes))
		for i, m := range stepsMinutes {
			steps[i] = time.Duration(m) * time.Minute
		}
		s.Steps = steps
	}
	if maxStage > 0 {
		s.MaxStage = maxStage
	}
	return s
}

// Apply は回答結果を反映した新しい語彙の状態を返します。引数は変更しません。
//
//   - 不正解: 学習段階と間隔をリセットし、易しさ係数を下げて即時再出題
//   - 学習段階での正解: 段階を1つ進め、分〜時間単位の短い間隔を置く。
//     MaxStage に到達したら卒業し、間隔1日・易しさ係数2.5で復習に移行
//   - 復習での正解: 間隔に易しさ係数を掛けて伸ばす
func (s *Scheduler) Apply(v model.Vocabulary, correct bool, now time.Time) model.Vocabulary {
	if !correct {
		v.LearningStage = 0
		v.IntervalDays = 0
		v.EaseFactor = clampEase(v.EaseFactor - easePenalty)
		v.NextReview = now
		return v
	}

	if v.LearningStage < s.MaxStage {
		v.LearningStage++
		if v.LearningStage >= s.MaxStage {
			// 卒業。ここからは日単位の復習になる。
			v.IntervalDays = InitialIntervalDays
			v.EaseFactor = InitialEaseFactor
			v.NextReview = now.Add(daysToDuration(v.IntervalDays))
			return v
		}
		v.NextReview = now.Add(s.stepFor(v.LearningStage))
		return v
	}

	v.EaseFactor = clampEase(v.EaseFactor)
	v.IntervalDays *= v.EaseFactor
	v.NextReview = now.Add(daysToDuration(v.IntervalDays))
	return v
}

// stepFor は進んだ先の段階に対応する間隔を返します。
func (s *Scheduler) stepFor(stage int) time.Duration {
	if len(s.Steps) == 0 {
		return time.Minute
	}
	idx := stage - 1
	if idx >= len(s.Steps) {
		idx = len(s.Steps) - 1
	}
	return s.Steps[idx]
}

func clampEase(ease float64) float64 {
	if ease < MinEaseFactor {
		return MinEaseFactor
	}
	return ease
}

func daysToDuration(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}
