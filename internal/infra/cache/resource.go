package cache

import (
	"time"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"
)

// ResourceType tags a cache entry with the kind of server resource it
// holds. TTLs are scoped per type, not per key.
type ResourceType string

const (
	ResourceProfile       ResourceType = "profile"
	ResourceEarnings      ResourceType = "earnings"
	ResourceBookings      ResourceType = "bookings"
	ResourceBooking       ResourceType = "booking"
	ResourceNotifications ResourceType = "notifications"
	ResourceRanking       ResourceType = "ranking"
	ResourceServices      ResourceType = "services"
	ResourceZones         ResourceType = "zones"
	ResourceTier          ResourceType = "tier"
	ResourceTierBenefits  ResourceType = "tierBenefits"
	ResourceIncentive     ResourceType = "incentive"
	ResourceDefault       ResourceType = "default"
)

type TTLTable map[ResourceType]time.Duration

func NewTTLTable(cfg config.CacheConfig) TTLTable {
	return TTLTable{
		ResourceProfile:       cfg.TTLProfile,
		ResourceEarnings:      cfg.TTLEarnings,
		ResourceBookings:      cfg.TTLBookings,
		ResourceBooking:       cfg.TTLBooking,
		ResourceNotifications: cfg.TTLNotifications,
		ResourceRanking:       cfg.TTLRanking,
		ResourceServices:      cfg.TTLServices,
		ResourceZones:         cfg.TTLZones,
		ResourceTier:          cfg.TTLTier,
		ResourceTierBenefits:  cfg.TTLTierBenefits,
		ResourceIncentive:     cfg.TTLIncentive,
		ResourceDefault:       cfg.TTLDefault,
	}
}

// For fails open: unknown resource types get the conservative default TTL
// rather than an error.
func (t TTLTable) For(rt ResourceType) time.Duration {
	if ttl, ok := t[rt]; ok {
		return ttl
	}
	return t[ResourceDefault]
}
