package products

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/storefront-samples/go-bff-server/internal/domains/products/domain"
	productactivities "github.com/storefront-samples/go-bff-server/internal/platform/temporal/activities/products"
)

const (
	// ProductCreationWorkflowName is the public identifier for registering the workflow.
	ProductCreationWorkflowName = "products.workflows.Creation"
	// ProductCreationTaskQueue is the queue consumed by the worker processing product workflows.
	ProductCreationTaskQueue = "PRODUCT_CREATION"
)

// ProductCreationWorkflowInput captures the payload required to provision a
// new catalog item.
type ProductCreationWorkflowInput struct {
	Product *domain.Product
	TraceID string
}

// ProductCreationWorkflow orchestrates persisting a product aggregate.
func ProductCreationWorkflow(ctx workflow.Context, input ProductCreationWorkflowInput) (*domain.Product, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ProductCreationWorkflow started", withTraceID(input.TraceID, "name", input.Product.Name)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var saved domain.Product
	if err := workflow.ExecuteActivity(ctx, productactivities.PersistProductActivityName, input.Product).Get(ctx, &saved); err != nil {
		logger.Error("ProductCreationWorkflow failed", withTraceID(input.TraceID, "name", input.Product.Name, "error", err)...)
		return nil, err
	}
	logger.Info("ProductCreationWorkflow completed", withTraceID(input.TraceID, "productId", saved.ID)...)
	return &saved, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
