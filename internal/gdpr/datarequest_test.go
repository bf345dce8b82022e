package gdpr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"b3acon/internal/customer"
	"b3acon/internal/order"
)

func TestCompileDataRequestWithOrders(t *testing.T) {
	customers := &fakeCustomers{profile: &customer.Record{
		ShopifyCustomerID: "207119551",
		Email:             "jane@example.com",
	}}
	orders := &fakeOrders{list: []order.Record{
		{ShopifyOrderID: "1001", TotalPrice: decimal.RequireFromString("19.90"), Currency: "USD", FinancialStatus: "paid", CreatedAt: time.Now()},
		{ShopifyOrderID: "1002", TotalPrice: decimal.RequireFromString("5.10"), Currency: "USD", FinancialStatus: "refunded", CreatedAt: time.Now()},
	}}
	requests := &fakeRequestLog{}
	svc := redactService(&fakeShops{shops: activeShop("acme.myshopify.com")}, customers, orders, &fakeAnalytics{}, requests)

	summary, err := svc.CompileDataRequest(context.Background(), DataRequest{
		ShopDomain:      "acme.myshopify.com",
		CustomerID:      "207119551",
		CustomerEmail:   "jane@example.com",
		OrdersRequested: true,
	})
	if err != nil {
		t.Fatalf("CompileDataRequest: %v", err)
	}

	if !summary.CustomerProfile {
		t.Fatal("CustomerProfile = false with a stored profile")
	}
	if summary.OrdersCount != 2 {
		t.Fatalf("OrdersCount = %d, want 2", summary.OrdersCount)
	}
	if summary.RequestRef == "" {
		t.Fatal("RequestRef is empty")
	}

	if len(requests.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(requests.entries))
	}
	e := requests.entries[0]
	if e.RequestType != RequestTypeDataRequest || e.Status != StatusCompleted {
		t.Fatalf("audit entry = %q/%q", e.RequestType, e.Status)
	}
	payload, ok := e.RequestData.(map[string]any)
	if !ok {
		t.Fatalf("RequestData type = %T", e.RequestData)
	}
	if payload["orders_total"] != "25.00" {
		t.Fatalf("orders_total = %v, want 25.00", payload["orders_total"])
	}
}

func TestCompileDataRequestSkipsOrdersUnlessRequested(t *testing.T) {
	orders := &fakeOrders{listErr: errors.New("must not be called")}
	requests := &fakeRequestLog{}
	svc := redactService(&fakeShops{shops: activeShop("acme.myshopify.com")}, &fakeCustomers{}, orders, &fakeAnalytics{}, requests)

	summary, err := svc.CompileDataRequest(context.Background(), DataRequest{
		ShopDomain:    "acme.myshopify.com",
		CustomerID:    "207119551",
		CustomerEmail: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("CompileDataRequest: %v", err)
	}
	if orders.listCalled {
		t.Fatal("orders were read without orders_requested")
	}
	if summary.OrdersCount != 0 {
		t.Fatalf("OrdersCount = %d, want 0", summary.OrdersCount)
	}
}

func TestCompileDataRequestMissingProfileStillCompletes(t *testing.T) {
	requests := &fakeRequestLog{}
	svc := redactService(&fakeShops{shops: activeShop("acme.myshopify.com")}, &fakeCustomers{}, &fakeOrders{}, &fakeAnalytics{}, requests)

	summary, err := svc.CompileDataRequest(context.Background(), DataRequest{
		ShopDomain:    "acme.myshopify.com",
		CustomerID:    "999",
		CustomerEmail: "ghost@example.com",
	})
	if err != nil {
		t.Fatalf("CompileDataRequest: %v", err)
	}
	if summary.CustomerProfile {
		t.Fatal("CustomerProfile = true with no stored profile")
	}
	if len(requests.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(requests.entries))
	}
}

func TestCompileDataRequestUnknownShop(t *testing.T) {
	requests := &fakeRequestLog{}
	svc := redactService(&fakeShops{}, &fakeCustomers{}, &fakeOrders{}, &fakeAnalytics{}, requests)

	_, err := svc.CompileDataRequest(context.Background(), DataRequest{
		ShopDomain: "nobody.myshopify.com",
		CustomerID: "1",
	})
	if !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("err = %v, want ErrShopNotFound", err)
	}
	if len(requests.entries) != 0 {
		t.Fatalf("audit entries written for unknown shop: %+v", requests.entries)
	}
}

func TestUninstallDeactivatesShop(t *testing.T) {
	shops := &fakeShops{shops: activeShop("acme.myshopify.com")}
	requests := &fakeRequestLog{}
	svc := redactService(shops, &fakeCustomers{}, &fakeOrders{}, &fakeAnalytics{}, requests)

	res, err := svc.Uninstall(context.Background(), "acme.myshopify.com")
	if err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if !res.Deactivated {
		t.Fatal("Deactivated = false")
	}
	if len(shops.deactivated) != 1 || shops.deactivated[0] != "shop-1" {
		t.Fatalf("deactivated shops = %v", shops.deactivated)
	}
	if len(requests.entries) != 1 || requests.entries[0].RequestType != RequestTypeUninstall {
		t.Fatalf("audit entries = %+v", requests.entries)
	}
}

func TestUninstallUnknownShopIsQuiet(t *testing.T) {
	requests := &fakeRequestLog{}
	svc := redactService(&fakeShops{}, &fakeCustomers{}, &fakeOrders{}, &fakeAnalytics{}, requests)

	res, err := svc.Uninstall(context.Background(), "gone.myshopify.com")
	if err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if res.Deactivated {
		t.Fatal("Deactivated = true for unknown shop")
	}
	if len(requests.entries) != 0 {
		t.Fatalf("audit entries = %+v, want none", requests.entries)
	}
}

func TestUninstallDeactivateFailureIsAudited(t *testing.T) {
	shops := &fakeShops{shops: activeShop("acme.myshopify.com"), deactivateErr: errors.New("timeout")}
	requests := &fakeRequestLog{}
	svc := redactService(shops, &fakeCustomers{}, &fakeOrders{}, &fakeAnalytics{}, requests)

	_, err := svc.Uninstall(context.Background(), "acme.myshopify.com")
	if err == nil {
		t.Fatal("expected deactivate error")
	}
	if len(requests.entries) != 1 || requests.entries[0].Status != StatusFailed {
		t.Fatalf("audit entries = %+v, want one failed entry", requests.entries)
	}
}
