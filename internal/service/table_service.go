package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/lxxjn0/jwp-refactoring/internal/engine"
	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/pkg/api"
)

// TableService implements api.TableServiceHandler.
type TableService struct {
	tables *engine.TableService
}

var _ api.TableServiceHandler = (*TableService)(nil)

func NewTableService(tables *engine.TableService) *TableService {
	return &TableService{tables: tables}
}

func (s *TableService) CreateTable(ctx context.Context, req *connect.Request[api.CreateTableRequest]) (*connect.Response[api.CreateTableResponse], error) {
	empty := true
	if req.Msg.Empty != nil {
		empty = *req.Msg.Empty
	}
	slog.Info("CreateTable request received", "number_of_guests", req.Msg.NumberOfGuests, "empty", empty)

	table, err := s.tables.Create(ctx, &models.OrderTable{NumberOfGuests: req.Msg.NumberOfGuests, Empty: empty})
	if err != nil {
		return nil, toConnectError("CreateTable", err)
	}
	return connect.NewResponse(&api.CreateTableResponse{OrderTable: tableToAPI(table)}), nil
}

func (s *TableService) ListTables(ctx context.Context, req *connect.Request[api.ListTablesRequest]) (*connect.Response[api.ListTablesResponse], error) {
	tables, err := s.tables.List(ctx)
	if err != nil {
		return nil, toConnectError("ListTables", err)
	}
	return connect.NewResponse(&api.ListTablesResponse{OrderTables: tablesToAPI(tables)}), nil
}

func (s *TableService) ChangeEmpty(ctx context.Context, req *connect.Request[api.ChangeEmptyRequest]) (*connect.Response[api.ChangeEmptyResponse], error) {
	slog.Info("ChangeEmpty request received", "table_id", req.Msg.OrderTableID, "empty", req.Msg.Empty)

	table, err := s.tables.ChangeEmpty(ctx, req.Msg.OrderTableID, req.Msg.Empty)
	if err != nil {
		return nil, toConnectError("ChangeEmpty", err)
	}
	return connect.NewResponse(&api.ChangeEmptyResponse{OrderTable: tableToAPI(table)}), nil
}

func (s *TableService) ChangeNumberOfGuests(ctx context.Context, req *connect.Request[api.ChangeNumberOfGuestsRequest]) (*connect.Response[api.ChangeNumberOfGuestsResponse], error) {
	slog.Info("ChangeNumberOfGuests request received",
		"table_id", req.Msg.OrderTableID,
		"number_of_guests", req.Msg.NumberOfGuests,
	)

	table, err := s.tables.ChangeNumberOfGuests(ctx, req.Msg.OrderTableID, req.Msg.NumberOfGuests)
	if err != nil {
		return nil, toConnectError("ChangeNumberOfGuests", err)
	}
	return connect.NewResponse(&api.ChangeNumberOfGuestsResponse{OrderTable: tableToAPI(table)}), nil
}

// TableGroupService implements api.TableGroupServiceHandler.
type TableGroupService struct {
	groups *engine.TableGroupService
}

var _ api.TableGroupServiceHandler = (*TableGroupService)(nil)

func NewTableGroupService(groups *engine.TableGroupService) *TableGroupService {
	return &TableGroupService{groups: groups}
}

func (s *TableGroupService) CreateTableGroup(ctx context.Context, req *connect.Request[api.CreateTableGroupRequest]) (*connect.Response[api.CreateTableGroupResponse], error) {
	slog.Info("CreateTableGroup request received", "table_ids", req.Msg.OrderTableIDs)

	group, err := s.groups.Group(ctx, req.Msg.OrderTableIDs)
	if err != nil {
		return nil, toConnectError("CreateTableGroup", err)
	}
	return connect.NewResponse(&api.CreateTableGroupResponse{TableGroup: tableGroupToAPI(group)}), nil
}

func (s *TableGroupService) ListTableGroups(ctx context.Context, req *connect.Request[api.ListTableGroupsRequest]) (*connect.Response[api.ListTableGroupsResponse], error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, toConnectError("ListTableGroups", err)
	}

	out := make([]*api.TableGroup, len(groups))
	for i, g := range groups {
		out[i] = tableGroupToAPI(g)
	}
	return connect.NewResponse(&api.ListTableGroupsResponse{TableGroups: out}), nil
}

func (s *TableGroupService) Ungroup(ctx context.Context, req *connect.Request[api.UngroupRequest]) (*connect.Response[api.UngroupResponse], error) {
	slog.Info("Ungroup request received", "table_group_id", req.Msg.TableGroupID)

	if err := s.groups.Ungroup(ctx, req.Msg.TableGroupID); err != nil {
		return nil, toConnectError("Ungroup", err)
	}
	return connect.NewResponse(&api.UngroupResponse{}), nil
}
