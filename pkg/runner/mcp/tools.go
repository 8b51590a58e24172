package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerMonthGridTool(srv, svc)
	registerNavigateTool(srv, svc)
	registerAssignmentsForTool(srv, svc)
	registerListDatesTool(srv, svc)
	registerAddAssignmentTool(srv, svc)
	registerRemoveAssignmentTool(srv, svc)
}

func registerMonthGridTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"month_grid",
		mcp.WithDescription("Return the 42 day cells (6 weeks, Sunday first) shown for a month, with assignment counts."),
		mcp.WithNumber("year",
			mcp.Required(),
			mcp.Description("Four digit year."),
		),
		mcp.WithNumber("month",
			mcp.Required(),
			mcp.Description("Month number, 1 for January."),
			mcp.Min(1),
			mcp.Max(12),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Year  int `json:"year"`
			Month int `json:"month"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		view, err := svc.MonthGrid(ctx, args.Year, args.Month)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func registerNavigateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"navigate",
		mcp.WithDescription("Step from a month to the next, previous or current month and return its grid."),
		mcp.WithNumber("year",
			mcp.Description("Starting year. Defaults to the current year when omitted."),
		),
		mcp.WithNumber("month",
			mcp.Description("Starting month, 1 for January. Defaults to the current month when omitted."),
			mcp.Min(1),
			mcp.Max(12),
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("Navigation step."),
			mcp.Enum(string(ActionNext), string(ActionPrevious), string(ActionToday)),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		action, err := request.RequireString("action")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		view, err := svc.Navigate(ctx, request.GetInt("year", 0), request.GetInt("month", 0), Action(action))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func registerAssignmentsForTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"assignments_for",
		mcp.WithDescription("List the people scheduled on a date."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date as YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := svc.AssignmentsFor(ctx, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(day)
	})
}

func registerListDatesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_dates",
		mcp.WithDescription("List every date that has assignments, with counts."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dates, err := svc.ListDates(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"dates": dates,
			"count": len(dates),
		})
	})
}

func registerAddAssignmentTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_assignment",
		mcp.WithDescription("Schedule a person on a date."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date as YYYY-MM-DD."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Display name."),
		),
		mcp.WithString("role", mcp.Description("Optional role.")),
		mcp.WithString("task", mcp.Description("Optional task for the day.")),
		mcp.WithString("email", mcp.Description("Optional email address.")),
		mcp.WithString("phone", mcp.Description("Optional phone number.")),
		mcp.WithString("notes", mcp.Description("Optional markdown notes.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date  string `json:"date"`
			Name  string `json:"name"`
			Role  string `json:"role"`
			Task  string `json:"task"`
			Email string `json:"email"`
			Phone string `json:"phone"`
			Notes string `json:"notes"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		p, err := svc.AddAssignment(ctx, AddAssignmentOptions{
			Date:  args.Date,
			Name:  args.Name,
			Role:  args.Role,
			Task:  args.Task,
			Email: args.Email,
			Phone: args.Phone,
			Notes: args.Notes,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"date":   args.Date,
			"person": p,
		})
	})
}

func registerRemoveAssignmentTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"remove_assignment",
		mcp.WithDescription("Remove a person from a date."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date as YYYY-MM-DD."),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Assignment identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.RemoveAssignment(ctx, date, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"date":    date,
			"id":      id,
			"removed": true,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
