//go:generate mockgen -source=../product_catalog.go      -destination=./mock_product_catalog.go      -package=mocks
//go:generate mockgen -source=../product_repository.go   -destination=./mock_product_repository.go   -package=mocks
//go:generate mockgen -source=../cart_pricer.go          -destination=./mock_cart_pricer.go          -package=mocks
//go:generate mockgen -source=../payment_gateway.go      -destination=./mock_payment_gateway.go      -package=mocks
//go:generate mockgen -source=../payment_status_cache.go -destination=./mock_payment_status_cache.go -package=mocks
//go:generate mockgen -source=../checkout_service.go     -destination=./mock_checkout_service.go     -package=mocks
//go:generate mockgen -source=../event_publisher.go      -destination=./mock_event_publisher.go      -package=mocks

package mocks
