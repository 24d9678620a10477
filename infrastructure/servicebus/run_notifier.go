package servicebus

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/logger"
)

// IRunNotifier forwards discovery run summaries to a Service Bus queue.
type IRunNotifier interface {
	SendMessage(queue string, message []byte) error
}

type RunNotifier struct {
	AzservicebusClient *azservicebus.Client
}

func NewRunNotifier(azServiceBusClient *azservicebus.Client) IRunNotifier {
	return &RunNotifier{AzservicebusClient: azServiceBusClient}
}

func (n *RunNotifier) SendMessage(queue string, message []byte) error {
	sender, err := n.AzservicebusClient.NewSender(queue, nil)
	if err != nil {
		logger.GetLogger().
			WithField("error", err).
			Error("Error while making new sender service bus.")
		return err
	}
	defer func(sender *azservicebus.Sender, ctx context.Context) {
		err := sender.Close(ctx)
		if err != nil {
			logger.GetLogger().
				WithField("error", err).
				Error("Error while closing sender.")
		}
	}(sender, context.Background())

	sbMessage := &azservicebus.Message{
		Body: message,
	}
	err = sender.SendMessage(context.Background(), sbMessage, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return err
	}

	return nil
}

// NewServiceBus instantiates the Service Bus client with the ambient Azure
// credential chain.
func NewServiceBus(_ context.Context, namespace string) (*azservicebus.Client, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	client, err := azservicebus.NewClient(namespace, cred, nil)
	if err != nil {
		return nil, err
	}
	return client, nil
}
