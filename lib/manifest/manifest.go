// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"

	"howett.net/plist"

	"github.com/bureau-foundation/relaunch/lib/bundleversion"
)

// Fixed values written into every manifest.
const (
	PackageType           = "APPL"
	InfoDictionaryVersion = "6.0"
	Signature             = "????"
	PrincipalClass        = "NSApplication"
	SupportedPlatform     = "MacOSX"
)

// Manifest is the Info.plist record of an application bundle.
type Manifest struct {
	Identifier            string   `plist:"CFBundleIdentifier"`
	Name                  string   `plist:"CFBundleName"`
	DisplayName           string   `plist:"CFBundleDisplayName"`
	Executable            string   `plist:"CFBundleExecutable"`
	ShortVersion          string   `plist:"CFBundleShortVersionString"`
	BuildVersion          string   `plist:"CFBundleVersion"`
	PackageType           string   `plist:"CFBundlePackageType"`
	InfoDictionaryVersion string   `plist:"CFBundleInfoDictionaryVersion"`
	Signature             string   `plist:"CFBundleSignature"`
	SupportedPlatforms    []string `plist:"CFBundleSupportedPlatforms"`
	PrincipalClass        string   `plist:"NSPrincipalClass"`
	HighResolution        bool     `plist:"NSHighResolutionCapable"`
	MinimumSystemVersion  string   `plist:"LSMinimumSystemVersion,omitempty"`
	Category              string   `plist:"LSApplicationCategoryType,omitempty"`
	IconFile              string   `plist:"CFBundleIconFile,omitempty"`
	Background            bool     `plist:"LSUIElement,omitempty"`
}

// Build validates metadata and assembles the manifest for it. The
// versions come from [bundleversion.Format] and are trusted as given.
func Build(metadata Metadata, versions bundleversion.Versions) (Manifest, error) {
	if err := metadata.Validate(); err != nil {
		return Manifest{}, err
	}
	return Manifest{
		Identifier:            metadata.Identifier,
		Name:                  metadata.Name,
		DisplayName:           metadata.Name,
		Executable:            metadata.Executable,
		ShortVersion:          versions.Short,
		BuildVersion:          versions.Build,
		PackageType:           PackageType,
		InfoDictionaryVersion: InfoDictionaryVersion,
		Signature:             Signature,
		SupportedPlatforms:    []string{SupportedPlatform},
		PrincipalClass:        PrincipalClass,
		HighResolution:        true,
		MinimumSystemVersion:  metadata.MinimumOS,
		Category:              metadata.Category,
		IconFile:              metadata.Icon,
		Background:            metadata.Background,
	}, nil
}

// Marshal serializes the manifest as a tab-indented XML property list
// with a trailing newline.
func (m Manifest) Marshal() ([]byte, error) {
	data, err := plist.MarshalIndent(m, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest for %s: %w", m.Identifier, err)
	}
	return append(data, '\n'), nil
}

// Parse decodes a property list in any format plist understands.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if _, err := plist.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decoding manifest: %w", err)
	}
	return m, nil
}
