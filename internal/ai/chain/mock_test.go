package chain

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/mock"
)

type mockChatModel struct {
	mock.Mock
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	args := m.Called(ctx, input, opts)
	msg, _ := args.Get(0).(*schema.Message)
	return msg, args.Error(1)
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	args := m.Called(ctx, input, opts)
	sr, _ := args.Get(0).(*schema.StreamReader[*schema.Message])
	return sr, args.Error(1)
}

// temperatureOf 从调用选项中取出 temperature
func temperatureOf(opts []model.Option) float32 {
	o := model.GetCommonOptions(&model.Options{}, opts...)
	if o.Temperature == nil {
		return 0
	}
	return *o.Temperature
}
