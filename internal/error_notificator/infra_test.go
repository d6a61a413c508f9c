package error_notificator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestTelegramInfra_SendsToEveryChat(t *testing.T) {
	var (
		mu    sync.Mutex
		chats []string
		texts []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"relay","username":"relay_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			_ = r.ParseForm()
			mu.Lock()
			chats = append(chats, r.FormValue("chat_id"))
			texts = append(texts, r.FormValue("text"))
			mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	bot, err := tgbotapi.NewBotAPIWithClient("token", srv.URL+"/bot%s/%s", srv.Client())
	if err != nil {
		t.Fatalf("bot init: %v", err)
	}

	infra := NewTelegramInfra(bot, []int64{10, 20})
	if err := infra.Notify(context.Background(), "session", errors.New("boom"), "id=abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Join(chats, ",") != "10,20" {
		t.Fatalf("expected both admin chats, got %v", chats)
	}
	if !strings.Contains(texts[0], "boom") || !strings.Contains(texts[0], "id=abc") {
		t.Fatalf("unexpected text %q", texts[0])
	}
}

type failingInfra struct{ calls int }

func (f *failingInfra) Notify(context.Context, string, error, string) error {
	f.calls++
	return errors.New("telegram down")
}

func TestService_SwallowsDeliveryFailure(t *testing.T) {
	infra := &failingInfra{}
	svc := NewService(infra)

	if err := svc.Notify(context.Background(), "upload", errors.New("x"), ""); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if infra.calls != 1 {
		t.Fatalf("expected one delivery attempt, got %d", infra.calls)
	}
}
