//go:generate mockgen -source=../publisher.go -destination=./mock_message_writer.go -package=mocks

package mocks
