package cerimonial

import (
	"fmt"
	"net/http"
	"testing"

	"campushub/pkg/model"
	"campushub/test/integration/testutil"
)

func TestCreateEvent_AttachesDefaultTasks(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.CerimonialURL)
	defer env.Cleanup(t, mongo)

	event := testutil.NewCerimonialRequestBuilder().Build()

	resp := client.POST(t, "/api/v1/cerimonial", event)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.CerimonialRequest
	resp.UnmarshalData(t, &created)

	if created.ID == "" {
		t.Error("expected ID to be set")
	}
	if created.Status != model.CerimonialOpen {
		t.Errorf("expected status %q, got %q", model.CerimonialOpen, created.Status)
	}
	if len(created.Tasks) != len(model.DefaultEventTasks()) {
		t.Fatalf("expected %d default tasks, got %d", len(model.DefaultEventTasks()), len(created.Tasks))
	}
	for i, task := range created.Tasks {
		if task.Done {
			t.Errorf("expected task %d to start undone", i)
		}
	}
}

func TestToggleTask(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.CerimonialURL)
	defer env.Cleanup(t, mongo)

	event := testutil.NewCerimonialRequestBuilder().Build()
	resp := client.POST(t, "/api/v1/cerimonial", event)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.CerimonialRequest
	resp.UnmarshalData(t, &created)

	resp = client.PATCH(t, fmt.Sprintf("/api/v1/cerimonial/id/%s/tasks/0", created.ID), map[string]bool{"done": true})
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.GET(t, fmt.Sprintf("/api/v1/cerimonial/id/%s", created.ID))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var updated model.CerimonialRequest
	resp.UnmarshalData(t, &updated)
	if !updated.Tasks[0].Done {
		t.Error("expected task 0 to be done")
	}
	if updated.Tasks[1].Done {
		t.Error("expected task 1 to remain undone")
	}
}

func TestToggleTask_IndexOutOfRange(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.CerimonialURL)
	defer env.Cleanup(t, mongo)

	event := testutil.NewCerimonialRequestBuilder().Build()
	resp := client.POST(t, "/api/v1/cerimonial", event)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.CerimonialRequest
	resp.UnmarshalData(t, &created)

	resp = client.PATCH(t, fmt.Sprintf("/api/v1/cerimonial/id/%s/tasks/99", created.ID), map[string]bool{"done": true})
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}

func TestUpdateEvent_Status(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.CerimonialURL)
	defer env.Cleanup(t, mongo)

	event := testutil.NewCerimonialRequestBuilder().Build()
	resp := client.POST(t, "/api/v1/cerimonial", event)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.CerimonialRequest
	resp.UnmarshalData(t, &created)

	patch := map[string]string{"status": model.CerimonialInProgress}
	resp = client.PATCH(t, fmt.Sprintf("/api/v1/cerimonial/id/%s", created.ID), patch)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.GET(t, fmt.Sprintf("/api/v1/cerimonial/id/%s", created.ID))
	var updated model.CerimonialRequest
	resp.UnmarshalData(t, &updated)
	if updated.Status != model.CerimonialInProgress {
		t.Errorf("expected status %q, got %q", model.CerimonialInProgress, updated.Status)
	}
}

func TestDeleteEvent(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t, env.CerimonialURL)
	defer env.Cleanup(t, mongo)

	event := testutil.NewCerimonialRequestBuilder().Build()
	resp := client.POST(t, "/api/v1/cerimonial", event)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.CerimonialRequest
	resp.UnmarshalData(t, &created)

	resp = client.DELETE(t, fmt.Sprintf("/api/v1/cerimonial/id/%s", created.ID))
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.GET(t, fmt.Sprintf("/api/v1/cerimonial/id/%s", created.ID))
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}
