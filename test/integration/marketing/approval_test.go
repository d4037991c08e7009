package marketing

import (
	"fmt"
	"net/http"
	"testing"

	"campushub/pkg/model"
	"campushub/test/integration/testutil"
)

func TestCreateMarketingRequest_StartsOpen(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.MarketingURL)
	defer env.Cleanup(t, mongo)

	request := testutil.NewMarketingRequestBuilder().Build()

	resp := client.POST(t, "/api/v1/marketing", request)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.MarketingRequest
	resp.UnmarshalData(t, &created)

	if created.ID == "" {
		t.Error("expected ID to be set")
	}
	if created.Status != model.MarketingOpen {
		t.Errorf("expected status %q, got %q", model.MarketingOpen, created.Status)
	}
	if created.Phone != "+5511912345678" {
		t.Errorf("expected normalized phone, got %q", created.Phone)
	}
}

func TestCreateMarketingRequest_CoordinatorSelfApproval(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.MarketingURL)
	defer env.Cleanup(t, mongo)

	request := testutil.NewMarketingRequestBuilder().AsCoordinator().Build()

	resp := client.POST(t, "/api/v1/marketing", request)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.MarketingRequest
	resp.UnmarshalData(t, &created)

	if created.Status != model.MarketingPending {
		t.Errorf("expected status %q, got %q", model.MarketingPending, created.Status)
	}
	if created.Approvals.Coordenador.Approved == nil || !*created.Approvals.Coordenador.Approved {
		t.Error("expected coordenador stage to be approved")
	}
}

func TestApprovalChain_FullFlow(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.MarketingURL)
	defer env.Cleanup(t, mongo)

	request := testutil.NewMarketingRequestBuilder().Build()
	resp := client.POST(t, "/api/v1/marketing", request)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.MarketingRequest
	resp.UnmarshalData(t, &created)

	decision := model.ApprovalDecision{Approved: true}

	for _, step := range []struct {
		stage model.Stage
		actor string
	}{
		{model.StageCoordenador, "coord@example.edu"},
		{model.StageDiretor, "diretor@example.edu"},
		{model.StageVice, "vice@example.edu"},
	} {
		path := fmt.Sprintf("/api/v1/marketing/id/%s/approvals/%s", created.ID, step.stage)
		resp = client.POSTAs(t, step.actor, path, decision)
		testutil.AssertStatusCode(t, resp, http.StatusNoContent)
	}

	resp = client.GET(t, fmt.Sprintf("/api/v1/marketing/id/%s", created.ID))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var approved model.MarketingRequest
	resp.UnmarshalData(t, &approved)

	if approved.Status != model.MarketingInProgress {
		t.Errorf("expected status %q after full chain, got %q", model.MarketingInProgress, approved.Status)
	}
	if approved.Approvals.Vice.By != "vice@example.edu" {
		t.Errorf("expected vice approval by actor, got %q", approved.Approvals.Vice.By)
	}
}

func TestApprovalChain_OutOfOrder(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.MarketingURL)
	defer env.Cleanup(t, mongo)

	request := testutil.NewMarketingRequestBuilder().Build()
	resp := client.POST(t, "/api/v1/marketing", request)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.MarketingRequest
	resp.UnmarshalData(t, &created)

	path := fmt.Sprintf("/api/v1/marketing/id/%s/approvals/%s", created.ID, model.StageDiretor)
	resp = client.POSTAs(t, "diretor@example.edu", path, model.ApprovalDecision{Approved: true})
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
}

func TestApprovalChain_MissingActor(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.MarketingURL)
	defer env.Cleanup(t, mongo)

	request := testutil.NewMarketingRequestBuilder().Build()
	resp := client.POST(t, "/api/v1/marketing", request)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.MarketingRequest
	resp.UnmarshalData(t, &created)

	path := fmt.Sprintf("/api/v1/marketing/id/%s/approvals/%s", created.ID, model.StageCoordenador)
	resp = client.POST(t, path, model.ApprovalDecision{Approved: true})
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}

func TestApprovalChain_RejectionIsTerminal(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.MarketingURL)
	defer env.Cleanup(t, mongo)

	request := testutil.NewMarketingRequestBuilder().Build()
	resp := client.POST(t, "/api/v1/marketing", request)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.MarketingRequest
	resp.UnmarshalData(t, &created)

	path := fmt.Sprintf("/api/v1/marketing/id/%s/approvals/%s", created.ID, model.StageCoordenador)
	resp = client.POSTAs(t, "coord@example.edu", path, model.ApprovalDecision{Approved: false})
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.GET(t, fmt.Sprintf("/api/v1/marketing/id/%s", created.ID))
	var rejected model.MarketingRequest
	resp.UnmarshalData(t, &rejected)
	if rejected.Status != model.MarketingRejected {
		t.Errorf("expected status %q, got %q", model.MarketingRejected, rejected.Status)
	}

	resp = client.POSTAs(t, "diretor@example.edu", path, model.ApprovalDecision{Approved: true})
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
}
