package resources

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/partner"
)

// call — запрос, дошедший до фейкового партнёра (кроме /oauth/token).
type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

// fakeAPI отвечает на /oauth/token и отдаёт заранее заданные ответы
// по ключу "METHOD /path"; всё остальное — 404.
type fakeAPI struct {
	srv *httptest.Server

	mu        sync.Mutex
	calls     []call
	responses map[string]string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	f := &fakeAPI{responses: make(map[string]string)}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)

	return f
}

func (f *fakeAPI) respond(method, path, body string) {
	f.mu.Lock()
	f.responses[method+" "+path] = body
	f.mu.Unlock()
}

func (f *fakeAPI) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == "/oauth/token" {
		_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`)
		return
	}

	c := call{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query()}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &c.Body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, c)
	body, ok := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"não encontrado"}`)
		return
	}
	_, _ = io.WriteString(w, body)
}

func (f *fakeAPI) client() *partner.Client {
	return partner.New(partner.EnvironmentProfile{
		Name:         "test",
		BaseURL:      f.srv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
		Timeout:      5 * time.Second,
		Endpoints:    partner.DefaultEndpoints(),
	}, partner.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func fixedNow() time.Time { return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) }

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()

	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	require.Equal(t, field, ve.Field)
}

func TestResource_CRUDPaths(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodPost, "/leads", `{"data":{"id":"l1","nome":"Maria"},"success":true}`)
	f.respond(http.MethodGet, "/leads/l1", `{"id":"l1","nome":"Maria"}`)
	f.respond(http.MethodPut, "/leads/l1", `{"data":{"id":"l1","nome":"Ana"}}`)
	f.respond(http.MethodDelete, "/leads/l1", ``)

	leads := NewLeads(f.client(), fixedNow)
	ctx := context.Background()

	created, err := leads.Create(ctx, models.CreateLeadRequest{Nome: "Maria", CPF: "12345678909", Origem: "site"})
	require.NoError(t, err)
	require.Equal(t, "l1", created.ID)

	got, err := leads.Get(ctx, "l1")
	require.NoError(t, err)
	require.Equal(t, "Maria", got.Nome)

	nome := "Ana"
	upd, err := leads.Update(ctx, "l1", models.UpdateLeadRequest{Nome: &nome})
	require.NoError(t, err)
	require.Equal(t, "Ana", upd.Nome)

	require.NoError(t, leads.Delete(ctx, "l1"))

	calls := f.recorded()
	require.Len(t, calls, 4)
	require.Equal(t, "Maria", calls[0].Body["nome"])
	require.Equal(t, map[string]any{"nome": "Ana"}, calls[2].Body)
}

func TestResource_ValidationBeforeNetwork(t *testing.T) {
	f := newFakeAPI(t)
	leads := NewLeads(f.client(), fixedNow)
	ctx := context.Background()

	_, err := leads.Create(ctx, models.CreateLeadRequest{Nome: "Maria", CPF: "123"})
	requireValidation(t, err, "cpf")

	_, err = leads.Create(ctx, models.CreateLeadRequest{CPF: "12345678909"})
	requireValidation(t, err, "nome")

	_, err = leads.Get(ctx, " ")
	requireValidation(t, err, "id")

	bad := "not-an-email"
	_, err = leads.Update(ctx, "l1", models.UpdateLeadRequest{Email: &bad})
	requireValidation(t, err, "email")

	require.Empty(t, f.recorded())
}

func TestResource_PartnerErrorPropagates(t *testing.T) {
	f := newFakeAPI(t)
	leads := NewLeads(f.client(), fixedNow)

	_, err := leads.Get(context.Background(), "missing")
	require.Error(t, err)
	require.True(t, partner.IsNotFound(err))

	var se *partner.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "não encontrado", se.Message)
}

func TestResource_PathEscapesSegments(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodGet, "/leads/a b", `{"id":"a b"}`)

	got, err := NewLeads(f.client(), fixedNow).Get(context.Background(), "a b")
	require.NoError(t, err)
	require.Equal(t, "a b", got.ID)
}

func TestLeads_ListAndSearch(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodGet, "/leads", `{"data":[{"id":"1","cpf":"11111111111"},{"id":"2","cpf":"12345678909"}],"pagination":{"currentPage":1,"totalItems":2}}`)

	leads := NewLeads(f.client(), fixedNow)
	ctx := context.Background()

	page, err := leads.List(ctx, models.LeadFilters{Status: []models.LeadStatus{models.LeadNovo, models.LeadContatado}})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	require.Equal(t, 2, page.Pagination.TotalItems)

	lead, found, err := leads.ByCPF(ctx, "12345678909")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "2", lead.ID)

	_, found, err = leads.ByCPF(ctx, "99999999999")
	require.NoError(t, err)
	require.False(t, found)

	calls := f.recorded()
	require.Equal(t, "novo,contatado", calls[0].Query.Get("status"))
	require.Equal(t, "12345678909", calls[1].Query.Get("busca"))
}

func TestLeads_UpdateStatusSetsContactDate(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodPut, "/leads/l1", `{"id":"l1","status":"contatado"}`)

	got, err := NewLeads(f.client(), fixedNow).UpdateStatus(context.Background(), "l1", models.LeadContatado, "ligou")
	require.NoError(t, err)
	require.Equal(t, models.LeadContatado, got.Status)

	body := f.recorded()[0].Body
	require.Equal(t, "contatado", body["status"])
	require.Equal(t, "ligou", body["observacoes"])
	require.Equal(t, "2025-06-10T12:00:00Z", body["dataContato"])
}

func TestLeads_TagsSetSemantics(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodGet, "/leads/l1", `{"id":"l1","tags":["vip","luz"]}`)
	f.respond(http.MethodPut, "/leads/l1", `{"id":"l1"}`)

	leads := NewLeads(f.client(), fixedNow)
	ctx := context.Background()

	_, err := leads.AddTags(ctx, "l1", []string{"luz", "novo"})
	require.NoError(t, err)

	_, err = leads.RemoveTags(ctx, "l1", []string{"vip", "luz"})
	require.NoError(t, err)

	calls := f.recorded()
	require.Len(t, calls, 4)
	require.Equal(t, []any{"vip", "luz", "novo"}, calls[1].Body["tags"])
	require.Equal(t, []any{}, calls[3].Body["tags"])
}

func TestLeads_MetricsAndContactToday(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodGet, "/leads/metrics", `{"data":{"total":10,"convertidos":3,"taxaConversao":0.3}}`)
	f.respond(http.MethodGet, "/leads/contact-today", `[{"id":"1"}]`)

	leads := NewLeads(f.client(), fixedNow)
	ctx := context.Background()

	m, err := leads.Metrics(ctx, "2025-01-01", "")
	require.NoError(t, err)
	require.Equal(t, 10, m.Total)

	today, err := leads.ContactToday(ctx)
	require.NoError(t, err)
	require.Len(t, today, 1)

	calls := f.recorded()
	require.Equal(t, "2025-01-01", calls[0].Query.Get("dataInicio"))
	require.False(t, calls[0].Query.Has("dataFim"))
	require.Equal(t, "2025-06-10", calls[1].Query.Get("data"))
}

func TestClients_ActionsAndValidation(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodPost, "/clients/c1/block", `{"id":"c1","status":"bloqueado"}`)
	f.respond(http.MethodPost, "/clients/c1/payment-capacity", `{"aprovado":true,"valorMaximo":5000}`)
	f.respond(http.MethodGet, "/clients/c1/credit-score", `{"data":{"score":720}}`)

	clients := NewClients(f.client(), fixedNow)
	ctx := context.Background()

	_, err := clients.Block(ctx, "c1", "")
	requireValidation(t, err, "motivo")

	got, err := clients.Block(ctx, "c1", "fraude")
	require.NoError(t, err)
	require.Equal(t, models.ClienteBloqueado, got.Status)

	pc, err := clients.PaymentCapacity(ctx, "c1", 1500)
	require.NoError(t, err)
	require.True(t, pc.Aprovado)

	score, err := clients.CreditScore(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, 720, score.Score)

	_, err = clients.Create(ctx, models.CreateClienteRequest{Nome: "Jovem", CPF: "12345678909", DataNascimento: "2010-01-01"})
	requireValidation(t, err, "dataNascimento")

	_, err = clients.Create(ctx, models.CreateClienteRequest{Nome: "X", CPF: "12345678909", RendaMensal: -1})
	requireValidation(t, err, "rendaMensal")

	calls := f.recorded()
	require.Len(t, calls, 3)
	require.Equal(t, "fraude", calls[0].Body["motivo"])
	require.Equal(t, 1500.0, calls[1].Body["valorSolicitado"])
}

func TestProposals_Validation(t *testing.T) {
	f := newFakeAPI(t)
	proposals := NewProposals(f.client(), fixedNow)
	ctx := context.Background()

	base := models.CreatePropostaRequest{ClienteID: "c1", ProdutoID: "p1", ValorSolicitado: 1000, PrazoMeses: 12, DataVencimento: "2025-07-01"}

	req := base
	req.ValorSolicitado = 0
	_, err := proposals.Create(ctx, req)
	requireValidation(t, err, "valorSolicitado")

	req = base
	req.DataVencimento = "2025-06-09"
	_, err = proposals.Create(ctx, req)
	requireValidation(t, err, "dataVencimento")

	require.Empty(t, f.recorded())

	f.respond(http.MethodPost, "/proposals", `{"id":"p1","status":"rascunho"}`)
	req = base
	req.DataVencimento = "2025-06-10"
	got, err := proposals.Create(ctx, req)
	require.NoError(t, err)
	require.Equal(t, models.PropostaRascunho, got.Status)
}

func TestProposals_Simulate(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodPost, "/proposals/simulate", `{"valorParcela":94.56,"valorTotal":1134.72}`)

	sim, err := NewProposals(f.client(), fixedNow).Simulate(context.Background(), models.SimulationRequest{ProdutoID: "p1", Valor: 1000, PrazoMeses: 12})
	require.NoError(t, err)
	require.InDelta(t, 94.56, sim.ValorParcela, 0.001)
}

func TestCalculateInstallment(t *testing.T) {
	require.Equal(t, 100.0, CalculateInstallment(1000, 0, 10))
	require.InDelta(t, 94.56, CalculateInstallment(1000, 0.02, 12), 0.01)
	require.Zero(t, CalculateInstallment(1000, 0.02, 0))
}

func TestContracts_Helpers(t *testing.T) {
	k := models.Contrato{
		ValorTotal: 1200,
		Parcelas: []models.Parcela{
			{ID: "1", Status: models.ParcelaPaga, ValorPago: 100, DataVencimento: "2025-01-10"},
			{ID: "2", Status: models.ParcelaPaga, ValorPago: 200, DataVencimento: "2025-02-10"},
			{ID: "4", Status: models.ParcelaPendente, DataVencimento: "2025-04-10"},
			{ID: "3", Status: models.ParcelaPendente, DataVencimento: "2025-03-10"},
			{ID: "0", Status: models.ParcelaAtrasada, DataVencimento: "2024-12-10"},
		},
	}

	require.Equal(t, 900.0, OutstandingBalance(k))
	require.Equal(t, 25.0, PaidPercentage(k))

	next, ok := NextInstallment(k)
	require.True(t, ok)
	require.Equal(t, "3", next.ID)

	require.Equal(t, 0.0, PaidPercentage(models.Contrato{ValorTotal: 100}))
	require.Equal(t, 100.0, OutstandingBalance(models.Contrato{ValorTotal: 100}))
	_, ok = NextInstallment(models.Contrato{})
	require.False(t, ok)
}

func TestContracts_PayInstallment(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodPost, "/contracts/k1/installments/p3/pay", `{"id":"p3","status":"paga","valorPago":100}`)

	contracts := NewContracts(f.client(), fixedNow)
	ctx := context.Background()

	_, err := contracts.PayInstallment(ctx, "k1", "p3", models.PaymentRequest{})
	requireValidation(t, err, "valorPago")

	p, err := contracts.PayInstallment(ctx, "k1", "p3", models.PaymentRequest{ValorPago: 100, DataPagamento: "2025-06-10"})
	require.NoError(t, err)
	require.Equal(t, models.ParcelaPaga, p.Status)
}

func TestProducts_ActiveAndSimulate(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodGet, "/products", `{"data":[{"id":"p1","status":"ativo"}],"pagination":{}}`)
	f.respond(http.MethodPost, "/products/p1/simulate", `{"data":{"valorParcela":100}}`)

	products := NewProducts(f.client())
	ctx := context.Background()

	active, err := products.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	sim, err := products.Simulate(ctx, "p1", 1000, 10)
	require.NoError(t, err)
	require.Equal(t, 100.0, sim.ValorParcela)

	_, err = products.Simulate(ctx, "p1", 1000, 0)
	requireValidation(t, err, "prazoMeses")

	calls := f.recorded()
	require.Len(t, calls, 2)
	require.Equal(t, "ativo", calls[0].Query.Get("status"))
	require.Equal(t, "100", calls[0].Query.Get("limit"))
	require.Equal(t, 1000.0, calls[1].Body["valor"])
}

func TestUsers_Validation(t *testing.T) {
	f := newFakeAPI(t)
	users := NewUsers(f.client())

	_, err := users.Create(context.Background(), models.CreateUsuarioRequest{Nome: "A", Email: "a@b.com", Password: "123", Role: models.RoleAgent})
	requireValidation(t, err, "password")
	require.Empty(t, f.recorded())
}

type fakeArchive struct {
	mu   sync.Mutex
	keys []string
	data [][]byte
	err  error
}

func (a *fakeArchive) Put(_ context.Context, key string, data []byte, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keys = append(a.keys, key)
	a.data = append(a.data, data)
	return a.err
}

func TestDocuments_UploadValidation(t *testing.T) {
	f := newFakeAPI(t)
	docs := NewDocuments(f.client(), nil)
	ctx := context.Background()

	valid := models.UploadDocumentRequest{
		Nome:     "rg.pdf",
		Tipo:     models.DocRG,
		Arquivo:  base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
		MimeType: "application/pdf",
		LeadID:   "l1",
	}

	cases := []struct {
		name  string
		mut   func(r *models.UploadDocumentRequest)
		field string
	}{
		{name: "no_name", mut: func(r *models.UploadDocumentRequest) { r.Nome = "" }, field: "nome"},
		{name: "bad_base64", mut: func(r *models.UploadDocumentRequest) { r.Arquivo = "não é base64!" }, field: "arquivo"},
		{name: "no_owner", mut: func(r *models.UploadDocumentRequest) { r.LeadID = "" }, field: ""},
		{name: "bad_mime", mut: func(r *models.UploadDocumentRequest) { r.MimeType = "text/html" }, field: "mimeType"},
		{name: "too_big", mut: func(r *models.UploadDocumentRequest) {
			r.Arquivo = base64.StdEncoding.EncodeToString(make([]byte, MaxDocumentSize+1))
		}, field: "arquivo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mut(&req)

			_, err := docs.Upload(ctx, req)
			requireValidation(t, err, tc.field)
		})
	}

	require.Empty(t, f.recorded())
}

func TestDocuments_UploadArchives(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodPost, "/documents", `{"data":{"id":"d1","status":"pendente"}}`)

	arch := &fakeArchive{}
	docs := NewDocuments(f.client(), arch)

	doc, err := docs.Upload(context.Background(), models.UploadDocumentRequest{
		Nome:      "conta.png",
		Tipo:      models.DocComprovanteResidencia,
		Arquivo:   base64.StdEncoding.EncodeToString([]byte("png")),
		MimeType:  "image/png",
		ClienteID: "c1",
	})
	require.NoError(t, err)
	require.Equal(t, "d1", doc.ID)

	require.Equal(t, []string{"clientes/c1/d1-conta.png"}, arch.keys)
	require.Equal(t, []byte("png"), arch.data[0])
}

func TestDocuments_ArchiveFailureDoesNotFailUpload(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodPost, "/documents", `{"id":"d1"}`)

	docs := NewDocuments(f.client(), &fakeArchive{err: errors.New("bucket down")})

	_, err := docs.Upload(context.Background(), models.UploadDocumentRequest{
		Nome:     "a.pdf",
		Tipo:     models.DocOutros,
		Arquivo:  base64.StdEncoding.EncodeToString([]byte("x")),
		MimeType: "application/pdf",
		LeadID:   "l1",
	})
	require.NoError(t, err)
}

func TestDocuments_ByLeadWithType(t *testing.T) {
	f := newFakeAPI(t)
	f.respond(http.MethodGet, "/documents", `{"data":[],"pagination":{}}`)

	_, err := NewDocuments(f.client(), nil).ByLead(context.Background(), "l1", models.DocCPF)
	require.NoError(t, err)

	q := f.recorded()[0].Query
	require.Equal(t, "l1", q.Get("leadId"))
	require.Equal(t, "cpf", q.Get("tipo"))
	require.False(t, strings.Contains(q.Encode(), "clienteId"))
}
