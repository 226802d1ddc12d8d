/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/suparena/entitynet/errors"
	"github.com/suparena/entitynet/models"
	"github.com/suparena/entitynet/netclient"
	"github.com/suparena/entitynet/netclient/mock"
)

func mustCreate(t *testing.T, m *mock.NetClient, rec netclient.WriteRecord) *netclient.WriteReceipt {
	t.Helper()
	receipt, err := m.CreateEntity(context.Background(), rec)
	if err != nil {
		t.Fatalf("CreateEntity failed: %v", err)
	}
	return receipt
}

func TestMockNetClient(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		m := mock.New()

		receipt := mustCreate(t, m, netclient.WriteRecord{
			Payload:     []byte(`{"a":1}`),
			ContentType: "application/json",
			Attributes:  []models.Attribute{{Key: "type", Value: "profile"}},
		})
		if !strings.HasPrefix(receipt.EntityKey, "0x") {
			t.Errorf("entity key should be 0x-prefixed hex, got %q", receipt.EntityKey)
		}
		if receipt.TxHash == "" {
			t.Error("receipt should carry a tx hash")
		}

		raw, err := m.GetEntity(ctx, receipt.EntityKey)
		if err != nil {
			t.Fatalf("GetEntity failed: %v", err)
		}
		if raw == nil {
			t.Fatal("expected stored entity")
		}
		if string(raw.Payload) != `{"a":1}` {
			t.Errorf("payload mismatch: %q", raw.Payload)
		}
	})

	t.Run("GetMissingReturnsNilNil", func(t *testing.T) {
		m := mock.New()
		raw, err := m.GetEntity(ctx, "0xmissing")
		if err != nil {
			t.Fatalf("GetEntity on missing key should not error: %v", err)
		}
		if raw != nil {
			t.Fatalf("expected nil entity, got %+v", raw)
		}
	})

	t.Run("UpdateReplacesWholesale", func(t *testing.T) {
		m := mock.New()
		receipt := mustCreate(t, m, netclient.WriteRecord{
			Payload:    []byte("one"),
			Attributes: []models.Attribute{{Key: "old", Value: "attr"}},
		})

		_, err := m.UpdateEntity(ctx, netclient.WriteRecord{
			EntityKey:  receipt.EntityKey,
			Payload:    []byte("two"),
			Attributes: []models.Attribute{{Key: "new", Value: "attr"}},
		})
		if err != nil {
			t.Fatalf("UpdateEntity failed: %v", err)
		}

		raw, _ := m.GetEntity(ctx, receipt.EntityKey)
		if raw.EntityKey != receipt.EntityKey {
			t.Error("entity key must survive updates")
		}
		if len(raw.Attributes) != 1 || raw.Attributes[0].Key != "new" {
			t.Errorf("old attributes must be superseded, got %+v", raw.Attributes)
		}
	})

	t.Run("UpdateMissingFails", func(t *testing.T) {
		m := mock.New()
		_, err := m.UpdateEntity(ctx, netclient.WriteRecord{EntityKey: "0xmissing"})
		if !errors.IsNotFound(err) {
			t.Fatalf("expected not found, got: %v", err)
		}
	})

	t.Run("DeleteMissingFails", func(t *testing.T) {
		m := mock.New()
		_, err := m.DeleteEntity(ctx, "0xmissing")
		if !errors.IsNotFound(err) {
			t.Fatalf("expected not found, got: %v", err)
		}
	})

	t.Run("CallCount", func(t *testing.T) {
		m := mock.New()
		mustCreate(t, m, netclient.WriteRecord{Payload: []byte("x")})
		if got := m.CallCount("createEntity"); got != 1 {
			t.Errorf("expected 1 create call, got %d", got)
		}
		if got := m.CallCount("deleteEntity"); got != 0 {
			t.Errorf("expected 0 delete calls, got %d", got)
		}
	})
}

func TestMockQuery(t *testing.T) {
	ctx := context.Background()
	m := mock.New()

	for i := 0; i < 10; i++ {
		kind := "profile"
		if i%2 == 1 {
			kind = "claim"
		}
		mustCreate(t, m, netclient.WriteRecord{
			Payload: []byte(`{"i":` + strconv.Itoa(i) + `}`),
			Attributes: []models.Attribute{
				{Key: "type", Value: kind},
				{Key: "score", Value: strconv.Itoa(i)},
			},
		})
	}

	t.Run("FilterEquality", func(t *testing.T) {
		page, err := m.Query().
			Where("type", models.OpEq, "profile").
			WithAttributes(true).
			Fetch(ctx)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if len(page.Entities()) != 5 {
			t.Fatalf("expected 5 profiles, got %d", len(page.Entities()))
		}
	})

	t.Run("NumericOperators", func(t *testing.T) {
		page, err := m.Query().
			Where("score", models.OpGte, "7").
			WithAttributes(true).
			Fetch(ctx)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if len(page.Entities()) != 3 {
			t.Fatalf("expected scores 7..9, got %d entities", len(page.Entities()))
		}
	})

	t.Run("ConjunctiveFilters", func(t *testing.T) {
		page, err := m.Query().
			Where("type", models.OpEq, "claim").
			Where("score", models.OpLt, "5").
			Fetch(ctx)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if len(page.Entities()) != 2 {
			t.Fatalf("expected claims 1 and 3, got %d entities", len(page.Entities()))
		}
	})

	t.Run("LimitAndPagination", func(t *testing.T) {
		page, err := m.Query().Limit(4).Fetch(ctx)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if len(page.Entities()) != 4 {
			t.Fatalf("expected page of 4, got %d", len(page.Entities()))
		}
		if !page.HasNextPage() {
			t.Fatal("expected a next page")
		}

		var total int
		for p := netclient.EntityPage(page); p != nil; {
			total += len(p.Entities())
			next, err := p.Next(ctx)
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			p = next
		}
		if total != 10 {
			t.Fatalf("pagination should cover all 10 entities, got %d", total)
		}
	})

	t.Run("InclusionFlags", func(t *testing.T) {
		page, err := m.Query().Limit(1).Fetch(ctx)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		raw := page.Entities()[0]
		if raw.Payload != nil {
			t.Error("payload should be excluded by default")
		}
		if raw.Attributes != nil {
			t.Error("attributes should be excluded by default")
		}
	})

	t.Run("EmptyFilterListIsValid", func(t *testing.T) {
		page, err := m.Query().Fetch(ctx)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if len(page.Entities()) != 10 {
			t.Fatalf("unfiltered query should return everything, got %d", len(page.Entities()))
		}
	})
}

func TestMockSubscribe(t *testing.T) {
	ctx := context.Background()
	m := mock.New()

	received := make(chan netclient.RawEntity, 10)
	unsub, err := m.Subscribe(ctx, func(raw netclient.RawEntity) {
		received <- raw
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	receipt := mustCreate(t, m, netclient.WriteRecord{Payload: []byte("ping")})

	select {
	case raw := <-received:
		if raw.EntityKey != receipt.EntityKey {
			t.Errorf("notified key %q, created %q", raw.EntityKey, receipt.EntityKey)
		}
	case <-time.After(time.Second):
		t.Fatal("subscription callback was never invoked")
	}

	// Unsubscribe twice; must be idempotent and final.
	unsub()
	unsub()

	mustCreate(t, m, netclient.WriteRecord{Payload: []byte("pong")})
	select {
	case <-received:
		t.Fatal("callback invoked after unsubscribe")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMockErrorInjection(t *testing.T) {
	ctx := context.Background()
	boom := errors.NewTransportError("createEntity", errors.ErrTransport)

	m := mock.New().WithCreateError(boom)
	if _, err := m.CreateEntity(ctx, netclient.WriteRecord{}); err == nil {
		t.Fatal("expected injected create error")
	}

	m = mock.New().WithQueryError(boom)
	if _, err := m.Query().Fetch(ctx); err == nil {
		t.Fatal("expected injected query error")
	}

	m = mock.New().WithGetError(boom)
	if _, err := m.GetEntity(ctx, "0x1"); err == nil {
		t.Fatal("expected injected get error")
	}
}
