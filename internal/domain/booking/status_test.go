//go:build unit

package booking_test

import (
	"testing"
	"time"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/domain/booking"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	type testCase struct {
		name string
		from booking.Status
		to   booking.Status
		want bool
	}

	t.Run("正常系ライフサイクル", func(t *testing.T) {
		cases := []testCase{
			{"承認待ち→見積待ちOK", booking.StatusWaitingApproval, booking.StatusWaitingQuote, true},
			{"承認待ち→却下OK", booking.StatusWaitingApproval, booking.StatusRejected, true},
			{"見積待ち→受諾待ちOK", booking.StatusWaitingQuote, booking.StatusWaitingAcceptance, true},
			{"見積待ち→期限切れOK", booking.StatusWaitingQuote, booking.StatusQuoteExpired, true},
			{"受諾待ち→支払済OK", booking.StatusWaitingAcceptance, booking.StatusPaid, true},
			{"支払済→移動中OK", booking.StatusPaid, booking.StatusOnTheWay, true},
			{"移動中→開始申請OK", booking.StatusOnTheWay, booking.StatusJobStartRequested, true},
			{"開始申請→開始OK", booking.StatusJobStartRequested, booking.StatusJobStarted, true},
			{"開始→完了申請OK", booking.StatusJobStarted, booking.StatusJobCompleteRequest, true},
			{"完了申請→完了OK", booking.StatusJobCompleteRequest, booking.StatusCompleted, true},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
			})
		}
	})

	t.Run("スキップ遷移と終端からの遷移はNG", func(t *testing.T) {
		cases := []testCase{
			{"承認待ち→支払済NG", booking.StatusWaitingApproval, booking.StatusPaid, false},
			{"支払済→完了NG", booking.StatusPaid, booking.StatusCompleted, false},
			{"完了→キャンセルNG", booking.StatusCompleted, booking.StatusCancelled, false},
			{"却下→見積待ちNG", booking.StatusRejected, booking.StatusWaitingQuote, false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
			})
		}
	})

	t.Run("非終端からはいつでもキャンセル・失敗に遷移できる", func(t *testing.T) {
		for _, from := range []booking.Status{
			booking.StatusWaitingApproval,
			booking.StatusWaitingQuote,
			booking.StatusPaid,
			booking.StatusJobStarted,
		} {
			assert.True(t, from.CanTransitionTo(booking.StatusCancelled), "from=%s", from)
			assert.True(t, from.CanTransitionTo(booking.StatusFailed), "from=%s", from)
		}
	})
}

func TestStatus_Classification(t *testing.T) {
	t.Run("終端ステータス", func(t *testing.T) {
		for _, s := range []booking.Status{
			booking.StatusCompleted, booking.StatusRejected, booking.StatusQuoteExpired,
			booking.StatusQuoteDeclined, booking.StatusCancelled, booking.StatusFailed,
		} {
			assert.True(t, s.IsTerminal(), "status=%s", s)
		}
		assert.False(t, booking.StatusPaid.IsTerminal())
	})

	t.Run("レコード削除を伴うステータス", func(t *testing.T) {
		assert.True(t, booking.StatusQuoteDeclined.Removing())
		assert.True(t, booking.StatusCancelled.Removing())
		assert.True(t, booking.StatusRejected.Removing())
		assert.False(t, booking.StatusCompleted.Removing())
		assert.False(t, booking.StatusFailed.Removing())
	})

	t.Run("未知ステータスはValidでない", func(t *testing.T) {
		assert.False(t, booking.Status("limbo_dance").Valid())
		assert.True(t, booking.StatusWaitingQuote.Valid())
	})
}

func TestPatch_Apply(t *testing.T) {
	t.Run("present fieldのみ上書きする", func(t *testing.T) {
		rec := builder.NewBookingBuilder().WithQuotation(120).Build()
		next := booking.StatusWaitingQuote
		booking.Patch{Status: &next}.Apply(&rec)

		assert.Equal(t, booking.StatusWaitingQuote, rec.Status)
		assert.Equal(t, 120.0, *rec.QuotationAmount) // 触られていない
	})

	t.Run("同一Patchの二重適用は冪等", func(t *testing.T) {
		rec1 := builder.NewBookingBuilder().Build()
		rec2 := rec1

		paid := booking.StatusPaid
		at := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
		p := booking.Patch{Status: &paid, PaidAt: &at}

		p.Apply(&rec1)
		p.Apply(&rec1)
		p.Apply(&rec2)

		if diff := cmp.Diff(rec2, rec1); diff != "" {
			t.Errorf("Booking mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("後勝ちマージ", func(t *testing.T) {
		rec := builder.NewBookingBuilder().Build()
		first := booking.StatusOnTheWay
		second := booking.StatusJobStartRequested
		booking.Patch{Status: &first}.Apply(&rec)
		booking.Patch{Status: &second}.Apply(&rec)
		assert.Equal(t, booking.StatusJobStartRequested, rec.Status)
	})
}
