package utils

import "github.com/hsdfat8/kitcheck/internal/domain/models"

// AdapterSeedData is the built-in adapter table. FromMount is the lens side.
var AdapterSeedData = []models.Adapter{
	{FromMount: "PL", ToMount: "LPL", Brand: "ARRI", Model: "PL-to-LPL Adapter", MaintainsInfinityFocus: true, Notes: "Passes /i and LDS lens data"},
	{FromMount: "PL", ToMount: "E-Mount", Brand: "Wooden Camera", Model: "E-Mount to PL Pro", MaintainsInfinityFocus: true, Notes: "Locking mount, supports lens support rods"},
	{FromMount: "PL", ToMount: "E-Mount", Brand: "MTF Services", Model: "Effect PL-E", MaintainsInfinityFocus: true},
	{FromMount: "PL", ToMount: "RF", Brand: "Canon", Model: "PL-RF Mount Adapter", MaintainsInfinityFocus: true, Notes: "Cooke /i metadata"},
	{FromMount: "PL", ToMount: "L-Mount", Brand: "Leitz", Model: "L-PL Adapter", MaintainsInfinityFocus: true},
	{FromMount: "PL", ToMount: "Z", Brand: "Wooden Camera", Model: "Z-Mount to PL", MaintainsInfinityFocus: true},
	{FromMount: "PL", ToMount: "EF", Brand: "MTF Services", Model: "PL to EF Adapter", MaintainsInfinityFocus: true, Notes: "Only for cameras with removable EF mount; check mirror clearance"},
	{FromMount: "EF", ToMount: "E-Mount", Brand: "Metabones", Model: "Smart Adapter V", MaintainsInfinityFocus: true, Notes: "Electronic aperture and AF"},
	{FromMount: "EF", ToMount: "E-Mount", Brand: "Sigma", Model: "MC-11", MaintainsInfinityFocus: true},
	{FromMount: "EF", ToMount: "RF", Brand: "Canon", Model: "EF-EOS R", MaintainsInfinityFocus: true},
	{FromMount: "EF", ToMount: "L-Mount", Brand: "Sigma", Model: "MC-21", MaintainsInfinityFocus: true},
	{FromMount: "EF", ToMount: "LPL", Brand: "ARRI", Model: "LPL to EF Adapter", MaintainsInfinityFocus: true, Notes: "Passive, no electronic iris"},
	{FromMount: "F", ToMount: "E-Mount", Brand: "Metabones", Model: "Nikon G to E-Mount", MaintainsInfinityFocus: true},
	{FromMount: "F", ToMount: "Z", Brand: "Nikon", Model: "FTZ II", MaintainsInfinityFocus: true},
	{FromMount: "LPL", ToMount: "E-Mount", Brand: "ARRI", Model: "LPL Mount for Sony E", MaintainsInfinityFocus: true},
	{FromMount: "LPL", ToMount: "RF", Brand: "ARRI", Model: "LPL Mount for Canon RF", MaintainsInfinityFocus: true},
}
