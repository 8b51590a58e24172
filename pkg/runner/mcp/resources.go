package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerAssignmentsResource(srv, svc)
	registerDateTemplate(srv, svc)
}

func registerAssignmentsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"contcal://assignments",
		"Assignments",
		mcp.WithResourceDescription("Every date with scheduled people and their counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dates, err := svc.ListDates(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"dates": dates,
			"count": len(dates),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDateTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"contcal://assignments/{date}",
		"Day Assignments",
		mcp.WithTemplateDescription("People scheduled on one YYYY-MM-DD date."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date, _ := request.Params.Arguments["date"].(string)
		if date == "" {
			return nil, fmt.Errorf("date is required")
		}

		day, err := svc.AssignmentsFor(ctx, date)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, day)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
