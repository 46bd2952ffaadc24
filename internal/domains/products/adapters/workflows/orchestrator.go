package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/storefront-samples/go-bff-server/internal/domains/products/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/products/ports"
	productworkflows "github.com/storefront-samples/go-bff-server/internal/platform/temporal/workflows/products"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalProductWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineProductWorkflows)(nil)
)

// TemporalProductWorkflows starts product workflows on a Temporal cluster.
type TemporalProductWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalProductWorkflows wires a Temporal client into the orchestrator.
func NewTemporalProductWorkflows(c client.Client) *TemporalProductWorkflows {
	return &TemporalProductWorkflows{client: c, taskQueue: productworkflows.ProductCreationTaskQueue}
}

// CreateProduct starts the Temporal workflow that persists a product.
func (o *TemporalProductWorkflows) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal product workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildProductCreationWorkflowID(product, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		productworkflows.ProductCreationWorkflow,
		productworkflows.ProductCreationWorkflowInput{Product: product, TraceID: traceComponent},
	)
	if err != nil {
		// A retried request with the same trace id reuses the original run.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && traceComponent != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var existing domain.Product
			if err := existingRun.Get(ctx, &existing); err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	var saved domain.Product
	if err := run.Get(ctx, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// InlineProductWorkflows executes the service directly without Temporal,
// useful for tests or dev fallbacks.
type InlineProductWorkflows struct {
	service ports.Service
}

// NewInlineProductWorkflows wraps the product service for synchronous execution.
func NewInlineProductWorkflows(service ports.Service) *InlineProductWorkflows {
	return &InlineProductWorkflows{service: service}
}

// CreateProduct delegates to the application service without durable orchestration.
func (o *InlineProductWorkflows) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline product workflows not configured")
	}
	return o.service.CreateProduct(ctx, product)
}

func buildProductCreationWorkflowID(product *domain.Product, traceComponent string) string {
	idComponent := strings.TrimSpace(product.ID)
	if idComponent == "" {
		idComponent = fmt.Sprintf("auto-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("product-creation-%s-%s", idComponent, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if spanCtx.IsValid() && spanCtx.TraceID().IsValid() {
		return spanCtx.TraceID().String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
