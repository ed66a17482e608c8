/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Subscription and notification operations
 */

package ipp

import (
	"context"

	"github.com/OpenPrinting/goipp"
)

// CreatePrinterSubscription creates subscription to printer events
func (c *Client) CreatePrinterSubscription(ctx context.Context,
	extra ...goipp.Attribute) (*goipp.Message, error) {
	return c.Send(ctx, OpCreatePrinterSubscription, c.targetAttrs(extra...), nil)
}

// CreateJobSubscription creates subscription to job events
func (c *Client) CreateJobSubscription(ctx context.Context, jobID int,
	extra ...goipp.Attribute) (*goipp.Message, error) {
	return c.jobOp(ctx, OpCreateJobSubscription, jobID, extra...)
}

// GetSubscriptionAttributes returns subscription attributes
func (c *Client) GetSubscriptionAttributes(ctx context.Context, subID int,
	requested []string) (*goipp.Message, error) {

	attrs := c.targetAttrs(IntAttr("subscription-id", subID))
	if attr, ok := RequestedAttrs(requested, nil); ok {
		attrs.Add(attr)
	}

	return c.Send(ctx, OpGetSubscriptionAttributes, attrs, nil)
}

// GetSubscriptions returns list of subscriptions
func (c *Client) GetSubscriptions(ctx context.Context,
	requested []string) (*goipp.Message, error) {

	attrs := c.targetAttrs()
	if attr, ok := RequestedAttrs(requested, nil); ok {
		attrs.Add(attr)
	}

	return c.Send(ctx, OpGetSubscriptions, attrs, nil)
}

// RenewSubscription renews the subscription lease
func (c *Client) RenewSubscription(ctx context.Context, subID int,
	extra ...goipp.Attribute) (*goipp.Message, error) {

	attrs := c.targetAttrs(IntAttr("subscription-id", subID))
	attrs = append(attrs, extra...)

	return c.Send(ctx, OpRenewSubscription, attrs, nil)
}

// CancelSubscription cancels the subscription
func (c *Client) CancelSubscription(ctx context.Context,
	subID int) (*goipp.Message, error) {

	attrs := c.targetAttrs(IntAttr("subscription-id", subID))
	return c.Send(ctx, OpCancelSubscription, attrs, nil)
}

// GetNotifications returns pending event notifications
func (c *Client) GetNotifications(ctx context.Context,
	channelURI string) (*goipp.Message, error) {

	attrs := c.targetAttrs(URIAttr("notification-channel-uri", channelURI))
	return c.Send(ctx, OpGetNotifications, attrs, nil)
}
