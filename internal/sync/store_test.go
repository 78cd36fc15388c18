//go:build unit

package sync_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/domain/booking"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/cache"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/rest"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/clock"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/errs"
	syncpkg "github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/sync"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/tests/common/builder"
	restmock "github.com/jsonplaytechnologies/onemarket-proapp-sub000/tests/mock/rest"

	cockroach "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type storeFixture struct {
	api   *restmock.MockAPI
	cache *cache.TimedCache
	clk   *clock.MockClock
	store *syncpkg.BookingStore
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := restmock.NewMockAPI(ctrl)
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	c := cache.NewTimedCache(cache.NewTTLTable(config.NewTestConfig().Cache), clk, slog.Default())
	return &storeFixture{
		api:   api,
		cache: c,
		clk:   clk,
		store: syncpkg.NewBookingStore(api, c, clk, config.NewTestConfig().Window, slog.Default()),
	}
}

// seed loads the given bookings through one expected list fetch.
func (f *storeFixture) seed(t *testing.T, records ...booking.Booking) {
	t.Helper()
	f.api.EXPECT().FetchBookings(gomock.Any()).Return(&rest.BookingList{Bookings: records}, nil)
	_, err := f.store.Bookings(context.Background())
	require.NoError(t, err)
}

func TestBookingStore_Reads(t *testing.T) {
	t.Run("TTL内の連続読み出しはHTTPを1回しか呼ばない", func(t *testing.T) {
		f := newStoreFixture(t)
		f.seed(t, builder.NewBookingBuilder().Build())

		// 2回目はキャッシュから（FetchBookingsのTimes(1)はseedで消化済み）
		list, err := f.store.Bookings(context.Background())
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("TTL経過後は再フェッチする", func(t *testing.T) {
		f := newStoreFixture(t)
		f.seed(t, builder.NewBookingBuilder().Build())

		f.clk.Add(31 * time.Second)
		f.api.EXPECT().FetchBookings(gomock.Any()).Return(&rest.BookingList{}, nil)
		list, err := f.store.Bookings(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("BookingsByStatusはステータスで絞り込む", func(t *testing.T) {
		f := newStoreFixture(t)
		f.seed(t,
			builder.NewBookingBuilder().WithStatus(booking.StatusWaitingApproval).Build(),
			builder.NewBookingBuilder().WithStatus(booking.StatusPaid).Build(),
			builder.NewBookingBuilder().WithStatus(booking.StatusPaid).Build(),
		)

		paid, err := f.store.BookingsByStatus(context.Background(), booking.StatusPaid)
		require.NoError(t, err)
		assert.Len(t, paid, 2)
	})

	t.Run("BookingByIDは個別キーでキャッシュされる", func(t *testing.T) {
		f := newStoreFixture(t)
		f.seed(t)

		rec := builder.NewBookingBuilder().WithStatus(booking.StatusPaid).Build()
		f.api.EXPECT().FetchBooking(gomock.Any(), rec.ID).Return(&rec, nil).Times(1)

		got, err := f.store.BookingByID(context.Background(), rec.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPaid, got.Status)

		// TTL内の2回目はキャッシュヒット
		got, err = f.store.BookingByID(context.Background(), rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
	})

	t.Run("読み出しはコピーを返し、ミラーを書き換えられない", func(t *testing.T) {
		f := newStoreFixture(t)
		rec := builder.NewBookingBuilder().Build()
		f.seed(t, rec)

		list, err := f.store.Bookings(context.Background())
		require.NoError(t, err)
		list[0].Status = booking.StatusFailed
		list[0].Service["name"] = "tampered"

		fresh, err := f.store.Bookings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusWaitingApproval, fresh[0].Status)
		assert.Equal(t, "deep-clean", fresh[0].Service["name"])
	})
}

func TestBookingStore_Mutations(t *testing.T) {
	t.Run("acceptAssignment成功でwaiting_quoteになりbookingsキャッシュが無効化される", func(t *testing.T) {
		f := newStoreFixture(t)
		rec := builder.NewBookingBuilder().WithStatus(booking.StatusWaitingApproval).Build()
		f.seed(t, rec)

		next := booking.StatusWaitingQuote
		f.api.EXPECT().AcceptAssignment(gomock.Any(), rec.ID).Return(booking.Patch{Status: &next}, nil)

		updated, err := f.store.AcceptAssignment(context.Background(), rec.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusWaitingQuote, updated.Status)
		assert.True(t, f.cache.IsStale("bookings", cache.ResourceBookings))
	})

	t.Run("サーバがstatusを返さなければ既知の次ステータスを使う", func(t *testing.T) {
		f := newStoreFixture(t)
		rec := builder.NewBookingBuilder().WithStatus(booking.StatusPaid).Build()
		f.seed(t, rec)

		f.api.EXPECT().MarkOnTheWay(gomock.Any(), rec.ID).Return(booking.Patch{}, nil)
		updated, err := f.store.MarkOnTheWay(context.Background(), rec.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusOnTheWay, updated.Status)
	})

	t.Run("サーバ応答のフィールドが勝つ（shallow merge）", func(t *testing.T) {
		f := newStoreFixture(t)
		rec := builder.NewBookingBuilder().WithStatus(booking.StatusWaitingQuote).Build()
		f.seed(t, rec)

		serverAmount := 99.5
		f.api.EXPECT().SendQuote(gomock.Any(), rec.ID, rest.QuoteRequest{Amount: 120, DurationMinutes: 90}).
			Return(booking.Patch{QuotationAmount: &serverAmount}, nil)

		updated, err := f.store.SendQuote(context.Background(), rec.ID, 120, 90)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusWaitingAcceptance, updated.Status)
		assert.Equal(t, 99.5, *updated.QuotationAmount)
		assert.Equal(t, 90, *updated.QuotedDurationMinutes)
	})

	t.Run("失敗時はレコードを変更せずエラーを返す（リトライなし）", func(t *testing.T) {
		f := newStoreFixture(t)
		rec := builder.NewBookingBuilder().WithStatus(booking.StatusWaitingApproval).Build()
		f.seed(t, rec)

		f.api.EXPECT().AcceptAssignment(gomock.Any(), rec.ID).
			Return(booking.Patch{}, errs.Mark(errs.New("timeout"), errs.ErrNetwork))

		_, err := f.store.AcceptAssignment(context.Background(), rec.ID)
		require.Error(t, err)
		assert.True(t, cockroach.Is(err, errs.ErrNetwork))

		list, err := f.store.Bookings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusWaitingApproval, list[0].Status)
	})

	t.Run("拒否はレコードをミラーから外す", func(t *testing.T) {
		f := newStoreFixture(t)
		rec := builder.NewBookingBuilder().WithStatus(booking.StatusWaitingApproval).Build()
		f.seed(t, rec)

		f.api.EXPECT().RejectAssignment(gomock.Any(), rec.ID).Return(booking.Patch{}, nil)
		_, err := f.store.RejectAssignment(context.Background(), rec.ID)
		require.NoError(t, err)

		f.api.EXPECT().FetchBookings(gomock.Any()).Return(&rest.BookingList{}, nil)
		list, err := f.store.Bookings(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("遷移表にない既定遷移はErrInvalidTransitionで弾く", func(t *testing.T) {
		f := newStoreFixture(t)
		rec := builder.NewBookingBuilder().WithStatus(booking.StatusWaitingApproval).Build()
		f.seed(t, rec)

		// waiting_approvalからon_the_wayへは進めない
		f.api.EXPECT().MarkOnTheWay(gomock.Any(), rec.ID).Return(booking.Patch{}, nil)
		_, err := f.store.MarkOnTheWay(context.Background(), rec.ID)
		assert.True(t, cockroach.Is(err, errs.ErrInvalidTransition))

		got, ok := f.store.Lookup(rec.ID)
		require.True(t, ok)
		assert.Equal(t, booking.StatusWaitingApproval, got.Status)
	})

	t.Run("未知のbookingへのmutationはErrBookingNotFound", func(t *testing.T) {
		f := newStoreFixture(t)
		f.seed(t)

		ghost := builder.NewBookingBuilder().Build()
		f.api.EXPECT().AcceptAssignment(gomock.Any(), ghost.ID).Return(booking.Patch{}, nil)
		_, err := f.store.AcceptAssignment(context.Background(), ghost.ID)
		assert.True(t, cockroach.Is(err, errs.ErrBookingNotFound))
	})
}

func TestBookingStore_JobStartWindow(t *testing.T) {
	// 基準時刻12:00、予約14:00、許容は前後60分
	t.Run("ウィンドウ前のjob startはHTTPを呼ばずに弾く", func(t *testing.T) {
		f := newStoreFixture(t)
		rec := builder.NewBookingBuilder().WithStatus(booking.StatusOnTheWay).Build()
		f.seed(t, rec)

		_, err := f.store.RequestJobStart(context.Background(), rec.ID)
		assert.True(t, cockroach.Is(err, errs.ErrValidation))
	})

	t.Run("ウィンドウ内なら通る", func(t *testing.T) {
		f := newStoreFixture(t)
		rec := builder.NewBookingBuilder().WithStatus(booking.StatusOnTheWay).Build()
		f.seed(t, rec)

		f.clk.Add(90 * time.Minute) // 13:30、開始60分前の範囲内
		f.api.EXPECT().RequestJobStart(gomock.Any(), rec.ID).Return(booking.Patch{}, nil)

		updated, err := f.store.RequestJobStart(context.Background(), rec.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusJobStartRequested, updated.Status)
	})

	t.Run("book-nowはゲートを通らない", func(t *testing.T) {
		f := newStoreFixture(t)
		rec := builder.NewBookingBuilder().WithStatus(booking.StatusOnTheWay).AsBookNow().Build()
		f.seed(t, rec)

		f.api.EXPECT().RequestJobStart(gomock.Any(), rec.ID).Return(booking.Patch{}, nil)
		_, err := f.store.RequestJobStart(context.Background(), rec.ID)
		require.NoError(t, err)
	})
}

func TestBookingStore_RefreshMerge(t *testing.T) {
	t.Run("再フェッチはidでマージし表示フラグを保持する", func(t *testing.T) {
		f := newStoreFixture(t)
		rec := builder.NewBookingBuilder().Build()
		f.seed(t, rec)

		f.store.SetFlags(rec.ID, func(fl *booking.Flags) { fl.TimeoutWarning = true })

		refreshed := rec
		refreshed.Status = booking.StatusWaitingQuote
		f.api.EXPECT().FetchBookings(gomock.Any()).Return(&rest.BookingList{Bookings: []booking.Booking{refreshed}}, nil)
		require.NoError(t, f.store.Refresh(context.Background()))

		list, err := f.store.Bookings(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, booking.StatusWaitingQuote, list[0].Status)
		assert.True(t, list[0].Flags.TimeoutWarning)
	})

	t.Run("サーバリストに無いレコードは落ちる", func(t *testing.T) {
		f := newStoreFixture(t)
		keep := builder.NewBookingBuilder().Build()
		drop := builder.NewBookingBuilder().Build()
		f.seed(t, keep, drop)

		f.api.EXPECT().FetchBookings(gomock.Any()).Return(&rest.BookingList{Bookings: []booking.Booking{keep}}, nil)
		require.NoError(t, f.store.Refresh(context.Background()))

		list, err := f.store.Bookings(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, keep.ID, list[0].ID)
	})
}

func TestBookingStore_Teardown(t *testing.T) {
	t.Run("teardown後のフェッチ結果は破棄される", func(t *testing.T) {
		f := newStoreFixture(t)
		f.seed(t, builder.NewBookingBuilder().Build())

		f.store.Teardown()
		f.cache.Clear()

		f.api.EXPECT().FetchBookings(gomock.Any()).
			Return(&rest.BookingList{Bookings: []booking.Booking{builder.NewBookingBuilder().Build()}}, nil)
		list, err := f.store.Bookings(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
