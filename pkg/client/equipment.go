package client

import (
	"fmt"
	"net/url"

	"campushub/pkg/model"
)

type EquipmentClient struct {
	httpClient *HttpClient
}

func NewEquipmentClient(baseUrl string) *EquipmentClient {
	return &EquipmentClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *EquipmentClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/equipment", body)
}

func (c *EquipmentClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/equipment?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *EquipmentClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/equipment/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *EquipmentClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/equipment/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *EquipmentClient) Delete(id string) (*Response, error) {
	path := "/api/v1/equipment/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *EquipmentClient) Available(date string, period string, time string) (*Response, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("period", period)
	if time != "" {
		q.Set("time", time)
	}
	return c.httpClient.GET("/api/v1/equipment/available?" + q.Encode())
}

func (c *EquipmentClient) DecodeEquipment(resp *Response) (*model.Equipment, error) {
	var equipment model.Equipment
	if err := decodeWrapped(resp, &equipment); err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (c *EquipmentClient) DecodeEquipmentList(resp *Response) ([]*model.Equipment, *Metadata, error) {
	var equipment []*model.Equipment
	metadata, err := decodePaginated(resp, &equipment)
	if err != nil {
		return nil, nil, err
	}
	return equipment, metadata, nil
}
