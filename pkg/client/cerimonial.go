package client

import (
	"fmt"
	"net/url"

	"campushub/pkg/model"
)

type CerimonialClient struct {
	httpClient *HttpClient
}

func NewCerimonialClient(baseUrl string) *CerimonialClient {
	return &CerimonialClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *CerimonialClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/cerimonial", body)
}

func (c *CerimonialClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/cerimonial?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *CerimonialClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/cerimonial/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *CerimonialClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/cerimonial/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *CerimonialClient) ToggleTask(id string, index int, body any) (*Response, error) {
	path := fmt.Sprintf("/api/v1/cerimonial/id/%s/tasks/%d", url.PathEscape(id), index)
	return c.httpClient.PATCH(path, body)
}

func (c *CerimonialClient) Delete(id string) (*Response, error) {
	path := "/api/v1/cerimonial/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *CerimonialClient) DecodeRequest(resp *Response) (*model.CerimonialRequest, error) {
	var request model.CerimonialRequest
	if err := decodeWrapped(resp, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (c *CerimonialClient) DecodeRequests(resp *Response) ([]*model.CerimonialRequest, *Metadata, error) {
	var requests []*model.CerimonialRequest
	metadata, err := decodePaginated(resp, &requests)
	if err != nil {
		return nil, nil, err
	}
	return requests, metadata, nil
}
