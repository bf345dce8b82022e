package gdpr

import (
	"context"
	"time"

	"b3acon/internal/audit"
	"b3acon/internal/customer"
	"b3acon/internal/order"
	"b3acon/internal/shop"
)

// callLog records the sequence of store mutations across fakes so tests can
// assert ordering.
type callLog struct {
	calls []string
}

func (c *callLog) add(name string) {
	c.calls = append(c.calls, name)
}

type fakeShops struct {
	log *callLog

	shops map[string]*shop.Shop

	deactivated   []string
	deactivateErr error

	deleteCount int64
	deleteErr   error
	deletedIDs  []string
}

func (f *fakeShops) FindByDomain(_ context.Context, domain string) (*shop.Shop, error) {
	s, ok := f.shops[shop.NormalizeDomain(domain)]
	if !ok {
		return nil, shop.ErrNotFound
	}
	return s, nil
}

func (f *fakeShops) Deactivate(_ context.Context, id string, _ time.Time) error {
	if f.deactivateErr != nil {
		return f.deactivateErr
	}
	f.deactivated = append(f.deactivated, id)
	return nil
}

func (f *fakeShops) DeleteByID(_ context.Context, id string) (int64, error) {
	if f.log != nil {
		f.log.add("shops.DeleteByID")
	}
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return f.deleteCount, nil
}

type fakeCustomers struct {
	log *callLog

	profile *customer.Record
	findErr error

	deleteByIDCount int64
	deleteByIDErr   error
	deletedIDs      []string

	deleteByShopCount int64
	deleteByShopErr   error
}

func (f *fakeCustomers) FindByShopifyID(_ context.Context, _, _ string) (*customer.Record, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.profile == nil {
		return nil, customer.ErrNotFound
	}
	return f.profile, nil
}

func (f *fakeCustomers) DeleteByShopifyID(_ context.Context, _, shopifyCustomerID string) (int64, error) {
	if f.deleteByIDErr != nil {
		return 0, f.deleteByIDErr
	}
	f.deletedIDs = append(f.deletedIDs, shopifyCustomerID)
	return f.deleteByIDCount, nil
}

func (f *fakeCustomers) DeleteByShop(_ context.Context, _ string) (int64, error) {
	if f.log != nil {
		f.log.add("customers.DeleteByShop")
	}
	if f.deleteByShopErr != nil {
		return 0, f.deleteByShopErr
	}
	return f.deleteByShopCount, nil
}

type fakeOrders struct {
	log *callLog

	list       []order.Record
	listErr    error
	listCalled bool

	hardDeleteCount  int64
	hardDeleteErr    error
	hardDeleteCalled bool
	hardDeletedIDs   []string

	anonymizeCount  int64
	anonymizeErr    error
	anonymizeCalled bool

	deleteByShopCount int64
	deleteByShopErr   error
}

func (f *fakeOrders) ListByCustomerEmail(_ context.Context, _, _ string) ([]order.Record, error) {
	f.listCalled = true
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeOrders) DeleteByShopifyIDs(_ context.Context, _ string, ids []string) (int64, error) {
	f.hardDeleteCalled = true
	f.hardDeletedIDs = ids
	if f.hardDeleteErr != nil {
		return 0, f.hardDeleteErr
	}
	return f.hardDeleteCount, nil
}

func (f *fakeOrders) AnonymizeByCustomerEmail(_ context.Context, _, _ string) (int64, error) {
	f.anonymizeCalled = true
	if f.anonymizeErr != nil {
		return 0, f.anonymizeErr
	}
	return f.anonymizeCount, nil
}

func (f *fakeOrders) DeleteByShop(_ context.Context, _ string) (int64, error) {
	if f.log != nil {
		f.log.add("orders.DeleteByShop")
	}
	if f.deleteByShopErr != nil {
		return 0, f.deleteByShopErr
	}
	return f.deleteByShopCount, nil
}

type fakeAnalytics struct {
	log *callLog

	deleteByCustomerCount int64
	deleteByCustomerErr   error

	deleteByShopCount int64
	deleteByShopErr   error
}

func (f *fakeAnalytics) DeleteByCustomer(_ context.Context, _, _ string) (int64, error) {
	if f.deleteByCustomerErr != nil {
		return 0, f.deleteByCustomerErr
	}
	return f.deleteByCustomerCount, nil
}

func (f *fakeAnalytics) DeleteByShop(_ context.Context, _ string) (int64, error) {
	if f.log != nil {
		f.log.add("analytics.DeleteByShop")
	}
	if f.deleteByShopErr != nil {
		return 0, f.deleteByShopErr
	}
	return f.deleteByShopCount, nil
}

type fakeWebhookConfigs struct {
	log *callLog

	deleteByShopCount int64
	deleteByShopErr   error
}

func (f *fakeWebhookConfigs) DeleteByShop(_ context.Context, _ string) (int64, error) {
	if f.log != nil {
		f.log.add("webhook_configs.DeleteByShop")
	}
	if f.deleteByShopErr != nil {
		return 0, f.deleteByShopErr
	}
	return f.deleteByShopCount, nil
}

type fakeProducts struct {
	log *callLog

	deleteByShopCount int64
	deleteByShopErr   error
}

func (f *fakeProducts) DeleteByShop(_ context.Context, _ string) (int64, error) {
	if f.log != nil {
		f.log.add("products.DeleteByShop")
	}
	if f.deleteByShopErr != nil {
		return 0, f.deleteByShopErr
	}
	return f.deleteByShopCount, nil
}

type fakeRequestLog struct {
	entries   []audit.Entry
	insertErr error
}

func (f *fakeRequestLog) Insert(_ context.Context, e audit.Entry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func activeShop(domain string) map[string]*shop.Shop {
	d := shop.NormalizeDomain(domain)
	return map[string]*shop.Shop{
		d: {ID: "shop-1", Domain: d, Status: shop.StatusActive, InstalledAt: time.Now()},
	}
}
