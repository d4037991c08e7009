package client

import (
	"fmt"
	"net/url"

	"campushub/pkg/model"
)

type MarketingClient struct {
	httpClient *HttpClient
}

func NewMarketingClient(baseUrl string) *MarketingClient {
	return &MarketingClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *MarketingClient) Create(body any, actor string) (*Response, error) {
	return c.httpClient.POSTWithHeaders("/api/v1/marketing", body, map[string]string{
		"X-Actor": actor,
	})
}

func (c *MarketingClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/marketing?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *MarketingClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/marketing/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *MarketingClient) Approve(id string, stage string, body any, actor string) (*Response, error) {
	path := "/api/v1/marketing/id/" + url.PathEscape(id) + "/approvals/" + url.PathEscape(stage)
	return c.httpClient.POSTWithHeaders(path, body, map[string]string{
		"X-Actor": actor,
	})
}

func (c *MarketingClient) UpdateChecklist(id string, body any) (*Response, error) {
	path := "/api/v1/marketing/id/" + url.PathEscape(id) + "/checklist"
	return c.httpClient.PATCH(path, body)
}

func (c *MarketingClient) Complete(id string) (*Response, error) {
	path := "/api/v1/marketing/id/" + url.PathEscape(id) + "/complete"
	return c.httpClient.POST(path, nil)
}

func (c *MarketingClient) DecodeRequest(resp *Response) (*model.MarketingRequest, error) {
	var request model.MarketingRequest
	if err := decodeWrapped(resp, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (c *MarketingClient) DecodeRequests(resp *Response) ([]*model.MarketingRequest, *Metadata, error) {
	var requests []*model.MarketingRequest
	metadata, err := decodePaginated(resp, &requests)
	if err != nil {
		return nil, nil, err
	}
	return requests, metadata, nil
}
